package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/olusolaa/stack-sync/internal/errors"
)

var notFoundCodes = []string{
	// Lambda, API Gateway
	"ResourceNotFoundException",
	"NotFoundException",

	// S3
	"NoSuchBucket",
	"NoSuchKey",

	// ECR
	"RepositoryNotFoundException",

	// CloudFormation reports a missing stack as a validation error.
	"StackNotFoundException",
}

var authCodes = []string{
	"AccessDenied",
	"AccessDeniedException",
	"UnauthorizedOperation",
	"UnrecognizedClientException",
	"ExpiredToken",
	"ExpiredTokenException",
	"InvalidClientTokenId",
}

// HandleAWSError maps an SDK error for operation on service to an AppError.
func HandleAWSError(service string, operation string, err error, ctx context.Context) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in AWS error handler for %s %s", service, operation))
	}

	if ctx != nil && ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodeTimeout,
			fmt.Sprintf("context ended during AWS %s %s call", service, operation))
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeTimeout,
			fmt.Sprintf("context ended during AWS %s %s call", service, operation))
	}

	code := errorCode(err)
	errMsg := err.Error()

	if slices.Contains(authCodes, code) || strings.Contains(errMsg, "AccessDenied") || strings.Contains(errMsg, "UnauthorizedOperation") {
		return errors.WrapUserFacing(err, errors.CodePlatformAuthError,
			fmt.Sprintf("AWS denied %s %s", service, operation),
			"Check the credentials, profile and IAM permissions used for syncing.")
	}

	if isNotFoundError(code, errMsg) {
		return errors.Wrap(err, errors.CodeResourceNotFound,
			fmt.Sprintf("%s %s: resource not found", service, operation))
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("AWS %s %s failed", service, operation))
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr != nil {
		return apiErr.ErrorCode()
	}
	return ""
}

func isNotFoundError(code, errMsg string) bool {
	if slices.Contains(notFoundCodes, code) {
		return true
	}
	if code == "ValidationError" && strings.Contains(errMsg, "does not exist") {
		return true
	}
	return strings.Contains(errMsg, "NotFound") ||
		strings.Contains(errMsg, "not found") ||
		strings.Contains(errMsg, "NoSuchKey") ||
		strings.Contains(errMsg, "NoSuchBucket")
}

// DefaultErrorHandler implements shared.ErrorHandler with HandleAWSError.
type DefaultErrorHandler struct{}

func (d *DefaultErrorHandler) Handle(service, operation string, err error, ctx context.Context) error {
	return HandleAWSError(service, operation, err, ctx)
}
