package mocks

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/docker/docker/api/types/image"
	"github.com/stretchr/testify/mock"

	ports "github.com/olusolaa/stack-sync/internal/core/ports"
)

// MockSTSClient is a mock implementation of the STS client
type MockSTSClient struct {
	mock.Mock
}

func (m *MockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.GetCallerIdentityOutput), args.Error(1)
}

// MockLambdaClient is a mock implementation of the Lambda client
type MockLambdaClient struct {
	mock.Mock
}

func (m *MockLambdaClient) UpdateFunctionCode(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lambda.UpdateFunctionCodeOutput), args.Error(1)
}

func (m *MockLambdaClient) PublishLayerVersion(ctx context.Context, params *lambda.PublishLayerVersionInput, optFns ...func(*lambda.Options)) (*lambda.PublishLayerVersionOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lambda.PublishLayerVersionOutput), args.Error(1)
}

// MockAPIGatewayClient is a mock implementation of the API Gateway client
type MockAPIGatewayClient struct {
	mock.Mock
}

func (m *MockAPIGatewayClient) PutRestApi(ctx context.Context, params *apigateway.PutRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.PutRestApiOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apigateway.PutRestApiOutput), args.Error(1)
}

func (m *MockAPIGatewayClient) CreateDeployment(ctx context.Context, params *apigateway.CreateDeploymentInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateDeploymentOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apigateway.CreateDeploymentOutput), args.Error(1)
}

// MockAPIGatewayV2Client is a mock implementation of the API Gateway V2 client
type MockAPIGatewayV2Client struct {
	mock.Mock
}

func (m *MockAPIGatewayV2Client) ReimportApi(ctx context.Context, params *apigatewayv2.ReimportApiInput, optFns ...func(*apigatewayv2.Options)) (*apigatewayv2.ReimportApiOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apigatewayv2.ReimportApiOutput), args.Error(1)
}

// MockS3Client is a mock implementation of the S3 client
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

// MockECRClient is a mock implementation of the ECR client
type MockECRClient struct {
	mock.Mock
}

func (m *MockECRClient) GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ecr.GetAuthorizationTokenOutput), args.Error(1)
}

// MockCloudFormationClient is a mock implementation of the CloudFormation client
type MockCloudFormationClient struct {
	mock.Mock
}

func (m *MockCloudFormationClient) ListStackResources(ctx context.Context, params *cloudformation.ListStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStackResourcesOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.ListStackResourcesOutput), args.Error(1)
}

// MockDockerClient is a mock implementation of the docker engine client
type MockDockerClient struct {
	mock.Mock
}

func (m *MockDockerClient) ImageTag(ctx context.Context, source, target string) error {
	args := m.Called(ctx, source, target)
	return args.Error(0)
}

func (m *MockDockerClient) ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, ref, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockRateLimiter is a mock implementation of the RateLimiter interface
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Wait(ctx context.Context, logger ports.Logger) error {
	args := m.Called(ctx, logger)
	return args.Error(0)
}

// MockErrorHandler is a mock implementation of the ErrorHandler interface
type MockErrorHandler struct {
	mock.Mock
}

func (m *MockErrorHandler) Handle(service, operation string, err error, ctx context.Context) error {
	args := m.Called(service, operation, err, ctx)
	return args.Error(0)
}
