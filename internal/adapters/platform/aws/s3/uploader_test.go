package s3

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	idderrors "github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/internal/log"
	"github.com/olusolaa/stack-sync/mocks"
)

type UploaderTestSuite struct {
	suite.Suite
	ctx              context.Context
	mockS3           *mocks.MockS3Client
	mockLimiter      *mocks.MockRateLimiter
	mockErrorHandler *mocks.MockErrorHandler
	uploader         *Uploader
}

func (s *UploaderTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockS3 = new(mocks.MockS3Client)
	s.mockLimiter = new(mocks.MockRateLimiter)
	s.mockErrorHandler = new(mocks.MockErrorHandler)
	s.uploader = NewUploader(s.mockS3, WithRateLimiter(s.mockLimiter), WithErrorHandler(s.mockErrorHandler))
}

func TestUploaderTestSuite(t *testing.T) {
	suite.Run(t, new(UploaderTestSuite))
}

func (s *UploaderTestSuite) TestUpload_Success() {
	body := []byte("zip bytes")
	expectedKey := ObjectKey("sync/app", body, ".zip")

	s.mockLimiter.On("Wait", mock.Anything, mock.Anything).Return(nil).Once()
	s.mockS3.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "artifacts" && aws.ToString(in.Key) == expectedKey
	}), mock.Anything).Return(&s3.PutObjectOutput{VersionId: aws.String("v1")}, nil).Once()

	loc, err := s.uploader.Upload(s.ctx, "artifacts", "sync/app", body, ".zip", log.Nop())
	s.Require().NoError(err)
	s.Equal("artifacts", loc.Bucket)
	s.Equal(expectedKey, loc.Key)
	s.Equal("v1", loc.VersionID)
	s.Equal("s3://artifacts/"+expectedKey, loc.URI())
	s.mockS3.AssertExpectations(s.T())
}

func (s *UploaderTestSuite) TestUpload_NoBucket() {
	_, err := s.uploader.Upload(s.ctx, "", "", []byte("x"), ".zip", log.Nop())
	s.True(idderrors.Is(err, idderrors.CodeConfigValidation))
	s.mockS3.AssertNotCalled(s.T(), "PutObject", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UploaderTestSuite) TestUpload_PutObjectError() {
	putErr := errors.New("AccessDenied")
	handled := idderrors.New(idderrors.CodePlatformAuthError, "denied")

	s.mockLimiter.On("Wait", mock.Anything, mock.Anything).Return(nil).Once()
	s.mockS3.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, putErr).Once()
	s.mockErrorHandler.On("Handle", "S3", "PutObject", putErr, mock.Anything).Return(handled).Once()

	_, err := s.uploader.Upload(s.ctx, "artifacts", "", []byte("x"), ".zip", log.Nop())
	s.ErrorIs(err, handled)
}

func (s *UploaderTestSuite) TestObjectKey() {
	key := ObjectKey("", []byte("abc"), ".zip")
	s.True(strings.HasSuffix(key, ".zip"))
	s.Len(strings.TrimSuffix(key, ".zip"), 64)
	s.Equal(key, ObjectKey("", []byte("abc"), ".zip"))
	s.NotEqual(key, ObjectKey("", []byte("abd"), ".zip"))
}
