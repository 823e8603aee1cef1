package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	aws_errors "github.com/olusolaa/stack-sync/internal/adapters/platform/aws/errors"
	aws_limiter "github.com/olusolaa/stack-sync/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// Location is where an artifact ended up.
type Location struct {
	Bucket    string
	Key       string
	VersionID string
}

func (l Location) URI() string {
	return fmt.Sprintf("s3://%s/%s", l.Bucket, l.Key)
}

// Uploader stores build artifacts under a content addressed key so repeated
// syncs of unchanged code reuse the same object name.
type Uploader struct {
	client       shared.S3ClientInterface
	limiter      shared.RateLimiter
	errorHandler shared.ErrorHandler
}

type UploaderOption func(*Uploader)

func WithRateLimiter(limiter shared.RateLimiter) UploaderOption {
	return func(u *Uploader) {
		if limiter != nil {
			u.limiter = limiter
		}
	}
}

func WithErrorHandler(handler shared.ErrorHandler) UploaderOption {
	return func(u *Uploader) {
		if handler != nil {
			u.errorHandler = handler
		}
	}
}

func NewUploader(client shared.S3ClientInterface, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		client:       client,
		limiter:      &aws_limiter.DefaultRateLimiter{},
		errorHandler: &aws_errors.DefaultErrorHandler{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ObjectKey is <prefix>/<sha256 of body><ext>.
func ObjectKey(prefix string, body []byte, ext string) string {
	sum := sha256.Sum256(body)
	return path.Join(prefix, hex.EncodeToString(sum[:])+ext)
}

func (u *Uploader) Upload(ctx context.Context, bucket, prefix string, body []byte, ext string, logger ports.Logger) (Location, error) {
	if bucket == "" {
		return Location{}, errors.NewUserFacing(errors.CodeConfigValidation, "no S3 bucket configured for artifact upload",
			"Set deploy.s3_bucket in the config file or pass --s3-bucket.")
	}

	key := ObjectKey(prefix, body, ext)
	if err := u.limiter.Wait(ctx, logger); err != nil {
		return Location{}, err
	}
	out, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return Location{}, u.errorHandler.Handle("S3", "PutObject", err, ctx)
	}

	loc := Location{Bucket: bucket, Key: key, VersionID: aws.ToString(out.VersionId)}
	logger.Debugf(ctx, "Uploaded %d bytes to %s", len(body), loc.URI())
	return loc, nil
}
