package syncflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/pkg/convert"
)

const LayerFlowName = "LayerVersion"

// LayerFlow publishes a new version of a layer from its build output. The
// new version ARN replaces the deployed one as the physical id.
type LayerFlow struct {
	base
}

func NewLayerFlow(sc ports.SyncContext, id domain.ResourceIdentifier, resource domain.Resource, deps Dependencies) *LayerFlow {
	return &LayerFlow{base: newBase(LayerFlowName, domain.KindLayerVersion, sc, id, resource, deps)}
}

// layerName reads the name out of
// arn:aws:lambda:<region>:<account>:layer:<name>:<version>.
func layerName(arn string) (string, bool) {
	parts := strings.Split(arn, ":")
	if len(parts) < 7 || parts[5] != "layer" || parts[6] == "" {
		return "", false
	}
	return parts[6], true
}

func (f *LayerFlow) Execute(ctx context.Context) error {
	arn, err := f.resolvePhysicalID()
	if err != nil {
		return err
	}
	name, ok := layerName(arn)
	if !ok {
		return errors.Errorf(errors.CodePhysicalIDError, "%s has physical id %q which is not a layer version ARN", f.id, arn)
	}

	dir, err := f.artifactDir(domain.PropContentURI, domain.PropContent)
	if err != nil {
		return err
	}
	archive, err := zipDir(dir)
	if err != nil {
		return err
	}

	content := &types.LayerVersionContentInput{}
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
		content.S3Bucket = aws.String(loc.Bucket)
		content.S3Key = aws.String(loc.Key)
		if loc.VersionID != "" {
			content.S3ObjectVersion = aws.String(loc.VersionID)
		}
	} else {
		content.ZipFile = archive
	}

	input := &lambda.PublishLayerVersionInput{
		LayerName:          aws.String(name),
		Content:            content,
		CompatibleRuntimes: f.runtimes(ctx),
	}
	if desc := f.stringProperty(domain.PropDescription); desc != "" {
		input.Description = aws.String(desc)
	}

	var out *lambda.PublishLayerVersionOutput
	err = f.call(ctx, "Lambda", "PublishLayerVersion", func() error {
		var callErr error
		out, callErr = f.deps.Lambda.PublishLayerVersion(ctx, input)
		return callErr
	})
	if err != nil {
		return err
	}
	if out != nil && out.LayerVersionArn != nil {
		f.physicalID = aws.ToString(out.LayerVersionArn)
	}
	f.logger.Infof(ctx, "Published layer version %s", f.physicalID)
	return nil
}

// runtimes drops CompatibleRuntimes entirely when it is not a literal list.
func (f *LayerFlow) runtimes(ctx context.Context) []types.Runtime {
	v, _ := f.resource.Property(domain.PropCompatibleRuntimes)
	list, err := convert.ToSliceOfString(v)
	if err != nil {
		f.logger.Debugf(ctx, "Ignoring CompatibleRuntimes of %s: %v", f.id, err)
		return nil
	}
	var runtimes []types.Runtime
	for _, r := range list {
		if r != "" {
			runtimes = append(runtimes, types.Runtime(r))
		}
	}
	return runtimes
}
