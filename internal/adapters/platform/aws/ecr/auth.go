package ecr

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/docker/docker/api/types/registry"

	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// tokens are refreshed this long before ECR says they expire
const expiryMargin = 5 * time.Minute

// Authenticator turns ECR authorization tokens into docker registry auth.
type Authenticator struct {
	client       shared.ECRClientInterface
	limiter      shared.RateLimiter
	errorHandler shared.ErrorHandler
	now          func() time.Time

	mu        sync.Mutex
	cached    string
	expiresAt time.Time
}

func NewAuthenticator(client shared.ECRClientInterface, limiter shared.RateLimiter, errorHandler shared.ErrorHandler) *Authenticator {
	return &Authenticator{
		client:       client,
		limiter:      limiter,
		errorHandler: errorHandler,
		now:          time.Now,
	}
}

// RegistryAuth returns the base64 encoded auth header value docker expects in
// ImagePush. Tokens are cached until shortly before they expire.
func (a *Authenticator) RegistryAuth(ctx context.Context, logger ports.Logger) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != "" && a.now().Before(a.expiresAt.Add(-expiryMargin)) {
		return a.cached, nil
	}

	if err := a.limiter.Wait(ctx, logger); err != nil {
		return "", err
	}
	out, err := a.client.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return "", a.errorHandler.Handle("ECR", "GetAuthorizationToken", err, ctx)
	}
	if len(out.AuthorizationData) == 0 {
		return "", errors.New(errors.CodePlatformAPIError, "ECR returned no authorization data")
	}

	data := out.AuthorizationData[0]
	decoded, err := base64.StdEncoding.DecodeString(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return "", errors.Wrap(err, errors.CodePlatformAPIError, "failed to decode ECR authorization token")
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", errors.New(errors.CodePlatformAPIError, "ECR authorization token is not in user:password form")
	}

	encoded, err := registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      user,
		Password:      pass,
		ServerAddress: aws.ToString(data.ProxyEndpoint),
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeImagePushError, "failed to encode registry auth")
	}

	a.cached = encoded
	a.expiresAt = aws.ToTime(data.ExpiresAt)
	logger.Debugf(ctx, "Fetched ECR credentials for %s", aws.ToString(data.ProxyEndpoint))
	return encoded, nil
}
