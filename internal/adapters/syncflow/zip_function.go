package syncflow

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

const ZipFunctionFlowName = "ZipFunction"

// ZipFunctionFlow zips the built function directory and replaces the
// deployed function code with it.
type ZipFunctionFlow struct {
	base
}

func NewZipFunctionFlow(sc ports.SyncContext, id domain.ResourceIdentifier, resource domain.Resource, deps Dependencies) *ZipFunctionFlow {
	return &ZipFunctionFlow{base: newBase(ZipFunctionFlowName, domain.KindFunction, sc, id, resource, deps)}
}

func (f *ZipFunctionFlow) Execute(ctx context.Context) error {
	functionName, err := f.resolvePhysicalID()
	if err != nil {
		return err
	}

	dir, err := f.artifactDir(domain.PropCodeURI, domain.PropCode)
	if err != nil {
		return err
	}
	archive, err := zipDir(dir)
	if err != nil {
		return err
	}
	f.logger.Debugf(ctx, "Zipped %s into %d bytes", dir, len(archive))

	input := &lambda.UpdateFunctionCodeInput{FunctionName: aws.String(functionName)}
	if len(archive) > maxDirectUploadBytes {
		deploy := f.sc.DeployContext()
		if deploy.S3Bucket == "" || f.deps.Uploader == nil {
			return errors.NewUserFacing(errors.CodeArtifactError,
				fmt.Sprintf("%s archive is %d bytes, over the %d byte inline limit", f.id, len(archive), maxDirectUploadBytes),
				"Pass --s3-bucket so large archives can be staged in S3.")
		}
		loc, err := f.deps.Uploader.Upload(ctx, deploy.S3Bucket, deploy.S3Prefix, archive, ".zip", f.logger)
		if err != nil {
			return err
		}
		input.S3Bucket = aws.String(loc.Bucket)
		input.S3Key = aws.String(loc.Key)
		if loc.VersionID != "" {
			input.S3ObjectVersion = aws.String(loc.VersionID)
		}
	} else {
		input.ZipFile = archive
	}

	err = f.call(ctx, "Lambda", "UpdateFunctionCode", func() error {
		_, callErr := f.deps.Lambda.UpdateFunctionCode(ctx, input)
		return callErr
	})
	if err != nil {
		return err
	}
	f.logger.Infof(ctx, "Updated code of function %s", functionName)
	return nil
}
