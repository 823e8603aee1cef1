package syncflow

import (
	"context"
	stderrs "errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/docker/docker/api/types/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/mocks"
)

const (
	testRepository = "123456789012.dkr.ecr.us-east-1.amazonaws.com/app"
	testDigest     = "sha256:4c7a3b8f0e9d1c2b5a6f7e8d9c0b1a2f3e4d5c6b7a8f9e0d1c2b3a4f5e6d7c8b"
)

type ImageFunctionFlowTestSuite struct {
	suite.Suite
	ctx    context.Context
	lambda *mocks.MockLambdaClient
	docker *mocks.MockDockerClient
	deps   Dependencies
	sc     *fakeSyncContext
	id     domain.ResourceIdentifier
}

func (s *ImageFunctionFlowTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.lambda = new(mocks.MockLambdaClient)
	s.docker = new(mocks.MockDockerClient)
	s.deps = baseDeps()
	s.deps.Lambda = s.lambda
	s.deps.Registry = &fakeRegistry{auth: "encoded-auth"}
	s.deps.Docker = func() (shared.DockerClientInterface, error) { return s.docker, nil }
	s.id = domain.NewResourceIdentifier("", "ImageFunction")
	s.sc = newSyncContext(s.T().TempDir(), nil, domain.PhysicalIDMapping{"ImageFunction": "app-ImageFunction-xyz"})
	s.sc.deploy.ImageRepository = testRepository
}

func (s *ImageFunctionFlowTestSuite) flow() *ImageFunctionFlow {
	return NewImageFunctionFlow(s.sc, s.id, domain.Resource{
		Type:       domain.TypeServerlessFunction,
		Properties: map[string]any{domain.PropPackageType: "Image"},
		Metadata:   map[string]any{domain.MetaDockerTag: "python3.12-v1"},
	}, s.deps)
}

func pushStream(lines ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func (s *ImageFunctionFlowTestSuite) TestPushAndUpdate() {
	target := testRepository + ":imagefunction-python3.12-v1"
	s.docker.On("ImageTag", mock.Anything, "imagefunction:python3.12-v1", target).Return(nil).Once()
	s.docker.On("ImagePush", mock.Anything, target, image.PushOptions{RegistryAuth: "encoded-auth"}).
		Return(pushStream(`{"status":"Pushing"}`, `{"status":"Pushed"}`), nil).Once()
	s.lambda.On("UpdateFunctionCode", mock.Anything, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String("app-ImageFunction-xyz"),
		ImageUri:     aws.String(target),
	}, mock.Anything).Return(&lambda.UpdateFunctionCodeOutput{}, nil).Once()

	f := s.flow()
	s.Require().NoError(f.Execute(s.ctx))
	s.Equal("app-ImageFunction-xyz", f.PhysicalID())
	s.docker.AssertExpectations(s.T())
	s.lambda.AssertExpectations(s.T())
}

func (s *ImageFunctionFlowTestSuite) TestPushStreamError() {
	s.docker.On("ImageTag", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.docker.On("ImagePush", mock.Anything, mock.Anything, mock.Anything).
		Return(pushStream(`{"errorDetail":{"message":"denied: not authorized"},"error":"denied: not authorized"}`), nil).Once()

	err := s.flow().Execute(s.ctx)
	s.True(errors.Is(err, errors.CodeImagePushError))
	s.lambda.AssertNotCalled(s.T(), "UpdateFunctionCode", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ImageFunctionFlowTestSuite) TestTagError() {
	s.docker.On("ImageTag", mock.Anything, mock.Anything, mock.Anything).Return(stderrs.New("No such image")).Once()

	err := s.flow().Execute(s.ctx)
	s.True(errors.Is(err, errors.CodeImagePushError))
	s.docker.AssertNotCalled(s.T(), "ImagePush", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ImageFunctionFlowTestSuite) TestRegistryAuthError() {
	authErr := errors.New(errors.CodePlatformAuthError, "no token")
	s.deps.Registry = &fakeRegistry{err: authErr}

	err := s.flow().Execute(s.ctx)
	s.ErrorIs(err, authErr)
}

func (s *ImageFunctionFlowTestSuite) TestDigestImageURIWithoutRepository() {
	s.sc.deploy.ImageRepository = ""
	local := testRepository + "@" + testDigest
	target := testRepository + ":imagefunction-latest"
	s.docker.On("ImageTag", mock.Anything, local, target).Return(nil).Once()
	s.docker.On("ImagePush", mock.Anything, target, image.PushOptions{RegistryAuth: "encoded-auth"}).
		Return(pushStream(`{"status":"Pushed"}`), nil).Once()
	s.lambda.On("UpdateFunctionCode", mock.Anything, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String("app-ImageFunction-xyz"),
		ImageUri:     aws.String(target),
	}, mock.Anything).Return(&lambda.UpdateFunctionCodeOutput{}, nil).Once()

	f := NewImageFunctionFlow(s.sc, s.id, domain.Resource{
		Type:       domain.TypeServerlessFunction,
		Properties: map[string]any{domain.PropPackageType: "Image", domain.PropImageURI: local},
	}, s.deps)
	s.Require().NoError(f.Execute(s.ctx))
	s.docker.AssertExpectations(s.T())
	s.lambda.AssertExpectations(s.T())
}

func (s *ImageFunctionFlowTestSuite) TestNoRepository() {
	s.sc.deploy.ImageRepository = ""

	err := s.flow().Execute(s.ctx)
	s.True(errors.Is(err, errors.CodeConfigValidation))
}

func (s *ImageFunctionFlowTestSuite) TestNotDeployed() {
	s.sc.ids = nil

	s.ErrorIs(s.flow().Execute(s.ctx), ErrInfraSyncRequired)
}

func TestImageFunctionFlowTestSuite(t *testing.T) {
	suite.Run(t, new(ImageFunctionFlowTestSuite))
}

func TestImageNames(t *testing.T) {
	f := &ImageFunctionFlow{base: base{id: domain.NewResourceIdentifier("", "MyFunc")}}

	assert.Equal(t, "myfunc:latest", f.localImage())

	target, err := f.targetImage("repo", "myfunc:v2")
	require.NoError(t, err)
	assert.Equal(t, "repo:myfunc-v2", target)

	target, err = f.targetImage("repo", "localhost:5000/myfunc")
	require.NoError(t, err)
	assert.Equal(t, "repo:myfunc-latest", target)

	target, err = f.targetImage("repo", testRepository+"@"+testDigest)
	require.NoError(t, err)
	assert.Equal(t, "repo:myfunc-latest", target)

	f.resource = domain.Resource{Properties: map[string]any{domain.PropImageURI: testRepository + ":v9"}}
	assert.Equal(t, testRepository+":v9", f.localImage())
}

func TestImageReference(t *testing.T) {
	tests := []struct {
		image    string
		wantRepo string
		wantTag  string
		wantErr  bool
	}{
		{image: "myfunc", wantRepo: "myfunc", wantTag: "latest"},
		{image: "myfunc:v2", wantRepo: "myfunc", wantTag: "v2"},
		{image: "localhost:5000/team/myfunc", wantRepo: "localhost:5000/team/myfunc", wantTag: "latest"},
		{image: testRepository + "@" + testDigest, wantRepo: testRepository, wantTag: "latest"},
		{image: testRepository + ":v3@" + testDigest, wantRepo: testRepository, wantTag: "v3"},
		{image: testRepository + "@sha256:abcd", wantErr: true},
		{image: "Not A Reference", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			repo, tag, err := imageReference(tt.image)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.CodeConfigValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRepo, repo)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}
