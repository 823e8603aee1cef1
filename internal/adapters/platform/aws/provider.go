package aws

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/docker/docker/client"

	aws_errors "github.com/olusolaa/stack-sync/internal/adapters/platform/aws/errors"
	aws_limiter "github.com/olusolaa/stack-sync/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// ClientProvider owns one AWS config and the service clients built from it.
type ClientProvider struct {
	awsConfig aws.Config
	logger    ports.Logger

	lambda         shared.LambdaClientInterface
	apiGateway     shared.APIGatewayClientInterface
	apiGatewayV2   shared.APIGatewayV2ClientInterface
	s3             shared.S3ClientInterface
	ecr            shared.ECRClientInterface
	cloudFormation shared.CloudFormationClientInterface
	sts            shared.STSClientInterface
	limiter        shared.RateLimiter
	errorHandler   shared.ErrorHandler

	dockerOnce sync.Once
	docker     shared.DockerClientInterface
	dockerErr  error

	accMu     sync.RWMutex
	accountID string
}

type ProviderOption func(*ClientProvider)

func WithRateLimiter(limiter shared.RateLimiter) ProviderOption {
	return func(p *ClientProvider) {
		if limiter != nil {
			p.limiter = limiter
		}
	}
}

func WithErrorHandler(handler shared.ErrorHandler) ProviderOption {
	return func(p *ClientProvider) {
		if handler != nil {
			p.errorHandler = handler
		}
	}
}

func WithSTSClient(c shared.STSClientInterface) ProviderOption {
	return func(p *ClientProvider) {
		if c != nil {
			p.sts = c
		}
	}
}

func WithDockerClient(c shared.DockerClientInterface) ProviderOption {
	return func(p *ClientProvider) {
		if c != nil {
			p.dockerOnce.Do(func() { p.docker = c })
		}
	}
}

// NewClientProvider loads the default AWS config chain, optionally pinned to a
// region and shared config profile.
func NewClientProvider(ctx context.Context, region, profile string, logger ports.Logger, opts ...ProviderOption) (*ClientProvider, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for AWS client provider")
	}

	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	if profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation, "failed to load AWS config",
			"Check AWS_PROFILE, AWS_REGION and your shared credentials file.")
	}
	if cfg.Region == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "no AWS region configured",
			"Pass --region or set AWS_REGION.")
	}

	return NewClientProviderFromConfig(cfg, logger, opts...), nil
}

func NewClientProviderFromConfig(cfg aws.Config, logger ports.Logger, opts ...ProviderOption) *ClientProvider {
	p := &ClientProvider{
		awsConfig:      cfg,
		logger:         logger,
		lambda:         lambda.NewFromConfig(cfg),
		apiGateway:     apigateway.NewFromConfig(cfg),
		apiGatewayV2:   apigatewayv2.NewFromConfig(cfg),
		s3:             s3.NewFromConfig(cfg),
		ecr:            ecr.NewFromConfig(cfg),
		cloudFormation: cloudformation.NewFromConfig(cfg),
		sts:            sts.NewFromConfig(cfg),
		limiter:        &aws_limiter.DefaultRateLimiter{},
		errorHandler:   &aws_errors.DefaultErrorHandler{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ClientProvider) Type() string { return shared.ProviderTypeAWS }

func (p *ClientProvider) Region() string { return p.awsConfig.Region }

func (p *ClientProvider) Lambda() shared.LambdaClientInterface                 { return p.lambda }
func (p *ClientProvider) APIGateway() shared.APIGatewayClientInterface         { return p.apiGateway }
func (p *ClientProvider) APIGatewayV2() shared.APIGatewayV2ClientInterface     { return p.apiGatewayV2 }
func (p *ClientProvider) S3() shared.S3ClientInterface                         { return p.s3 }
func (p *ClientProvider) ECR() shared.ECRClientInterface                       { return p.ecr }
func (p *ClientProvider) CloudFormation() shared.CloudFormationClientInterface { return p.cloudFormation }
func (p *ClientProvider) Limiter() shared.RateLimiter                          { return p.limiter }
func (p *ClientProvider) ErrorHandler() shared.ErrorHandler                    { return p.errorHandler }

// Docker connects to the local engine on first use using the DOCKER_*
// environment variables.
func (p *ClientProvider) Docker() (shared.DockerClientInterface, error) {
	p.dockerOnce.Do(func() {
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			p.dockerErr = errors.WrapUserFacing(err, errors.CodeImagePushError, "failed to create docker client",
				"Make sure the docker daemon is running and DOCKER_HOST is correct.")
			return
		}
		p.docker = cli
	})
	return p.docker, p.dockerErr
}

// AccountID calls sts:GetCallerIdentity once and caches the account.
func (p *ClientProvider) AccountID(ctx context.Context) (string, error) {
	p.accMu.RLock()
	acc := p.accountID
	p.accMu.RUnlock()
	if acc != "" {
		return acc, nil
	}

	p.accMu.Lock()
	defer p.accMu.Unlock()
	if p.accountID != "" {
		return p.accountID, nil
	}

	if err := p.limiter.Wait(ctx, p.logger); err != nil {
		return "", err
	}
	out, err := p.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", p.errorHandler.Handle("STS", "GetCallerIdentity", err, ctx)
	}
	if out.Account == nil {
		return "", errors.New(errors.CodePlatformAPIError, "AWS caller identity response did not contain Account ID")
	}
	p.accountID = aws.ToString(out.Account)
	return p.accountID, nil
}
