package shared

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

	"github.com/olusolaa/stack-sync/internal/core/ports"
)

const ProviderTypeAWS = "aws"

//go:generate mockery --name RateLimiter --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name ErrorHandler --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name STSClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name LambdaClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name APIGatewayClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name APIGatewayV2ClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name S3ClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name ECRClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name CloudFormationClientInterface --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name DockerClientInterface --output ./mocks --outpkg mocks --case underscore

// RateLimiter throttles outgoing AWS API calls.
type RateLimiter interface {
	// Wait blocks until the limiter allows one more call or ctx ends.
	Wait(ctx context.Context, logger ports.Logger) error
}

// ErrorHandler turns SDK errors into application errors.
type ErrorHandler interface {
	Handle(service, operation string, err error, ctx context.Context) error
}

type STSClientInterface interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type LambdaClientInterface interface {
	UpdateFunctionCode(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error)
	PublishLayerVersion(ctx context.Context, params *lambda.PublishLayerVersionInput, optFns ...func(*lambda.Options)) (*lambda.PublishLayerVersionOutput, error)
}

type APIGatewayClientInterface interface {
	PutRestApi(ctx context.Context, params *apigateway.PutRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.PutRestApiOutput, error)
	CreateDeployment(ctx context.Context, params *apigateway.CreateDeploymentInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateDeploymentOutput, error)
}

type APIGatewayV2ClientInterface interface {
	ReimportApi(ctx context.Context, params *apigatewayv2.ReimportApiInput, optFns ...func(*apigatewayv2.Options)) (*apigatewayv2.ReimportApiOutput, error)
}

type S3ClientInterface interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ECRClientInterface interface {
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
}

// CloudFormationClientInterface matches cloudformation.ListStackResourcesAPIClient
// so it can drive the SDK paginator.
type CloudFormationClientInterface interface {
	ListStackResources(ctx context.Context, params *cloudformation.ListStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStackResourcesOutput, error)
}

// DockerClientInterface is the subset of the docker engine client used to
// publish function images.
type DockerClientInterface interface {
	ImageTag(ctx context.Context, source, target string) error
	ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)
}
