package syncflow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/distribution/reference"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

const ImageFunctionFlowName = "ImageFunction"

// ImageFunctionFlow pushes the locally built image to ECR and points the
// function at it.
type ImageFunctionFlow struct {
	base
}

func NewImageFunctionFlow(sc ports.SyncContext, id domain.ResourceIdentifier, resource domain.Resource, deps Dependencies) *ImageFunctionFlow {
	return &ImageFunctionFlow{base: newBase(ImageFunctionFlowName, domain.KindFunction, sc, id, resource, deps)}
}

// localImage is the tag the build step gives the image:
// <lowercase logical id>:<DockerTag>, unless ImageUri names one.
func (f *ImageFunctionFlow) localImage() string {
	if uri := f.stringProperty(domain.PropImageURI); uri != "" {
		return uri
	}
	tag := f.resource.MetadataString(domain.MetaDockerTag)
	if tag == "" {
		tag = "latest"
	}
	return strings.ToLower(f.id.LogicalID) + ":" + tag
}

// targetImage is <repository>:<lowercase logical id>-<tag of local>.
func (f *ImageFunctionFlow) targetImage(repository, local string) (string, error) {
	_, tag, err := imageReference(local)
	if err != nil {
		return "", err
	}
	return repository + ":" + strings.ToLower(f.id.LogicalID) + "-" + tag, nil
}

// imageReference splits an image into its repository and tag. Digests are
// dropped and an untagged image is "latest".
func imageReference(img string) (string, string, error) {
	ref, err := reference.Parse(img)
	if err != nil {
		return "", "", errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("invalid image reference %q", img),
			"Use repository[:tag][@digest] with a lowercase repository name.")
	}
	named, ok := ref.(reference.Named)
	if !ok {
		return "", "", errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("image reference %q has no repository", img),
			"Use repository[:tag][@digest] with a lowercase repository name.")
	}
	tag := "latest"
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}
	return named.Name(), tag, nil
}

func (f *ImageFunctionFlow) Execute(ctx context.Context) error {
	functionName, err := f.resolvePhysicalID()
	if err != nil {
		return err
	}

	local := f.localImage()
	repository := f.sc.DeployContext().ImageRepository
	if repository == "" {
		if !strings.Contains(local, ".dkr.ecr.") {
			return errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("no image repository to push %s to", f.id),
				"Pass --image-repository with the ECR repository URI.")
		}
		if repository, _, err = imageReference(local); err != nil {
			return err
		}
	}
	target, err := f.targetImage(repository, local)
	if err != nil {
		return err
	}

	if err := f.push(ctx, local, target); err != nil {
		return err
	}

	err = f.call(ctx, "Lambda", "UpdateFunctionCode", func() error {
		_, callErr := f.deps.Lambda.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
			FunctionName: aws.String(functionName),
			ImageUri:     aws.String(target),
		})
		return callErr
	})
	if err != nil {
		return err
	}
	f.logger.Infof(ctx, "Updated function %s to image %s", functionName, target)
	return nil
}

func (f *ImageFunctionFlow) push(ctx context.Context, local, target string) error {
	if f.deps.Docker == nil || f.deps.Registry == nil {
		return errors.New(errors.CodeInternal, "image flow is missing docker or registry dependencies")
	}
	docker, err := f.deps.Docker()
	if err != nil {
		return err
	}
	auth, err := f.deps.Registry.RegistryAuth(ctx, f.logger)
	if err != nil {
		return err
	}

	if local != target {
		if err := docker.ImageTag(ctx, local, target); err != nil {
			return errors.WrapUserFacing(err, errors.CodeImagePushError,
				fmt.Sprintf("failed to tag %s as %s", local, target),
				"Check that the image was built locally.")
		}
	}

	f.logger.Debugf(ctx, "Pushing %s", target)
	rc, err := docker.ImagePush(ctx, target, image.PushOptions{RegistryAuth: auth})
	if err != nil {
		return errors.Wrap(err, errors.CodeImagePushError, "failed to push "+target)
	}
	defer rc.Close()

	// The daemon reports push failures inside the progress stream.
	if err := jsonmessage.DisplayJSONMessagesStream(rc, io.Discard, 0, false, nil); err != nil {
		return errors.Wrap(err, errors.CodeImagePushError, "failed to push "+target)
	}
	return nil
}
