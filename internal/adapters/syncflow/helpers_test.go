package syncflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	aws_errors "github.com/olusolaa/stack-sync/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/s3"
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/log"
)

type fakeSyncContext struct {
	build  domain.BuildContext
	deploy domain.DeployContext
	stacks []domain.Stack
	ids    domain.PhysicalIDMapping
}

func (f *fakeSyncContext) BuildContext() domain.BuildContext   { return f.build }
func (f *fakeSyncContext) DeployContext() domain.DeployContext { return f.deploy }
func (f *fakeSyncContext) Stacks() []domain.Stack              { return f.stacks }
func (f *fakeSyncContext) Logger() ports.Logger                { return log.Nop() }

func (f *fakeSyncContext) PhysicalID(id domain.ResourceIdentifier) (string, bool) {
	v, ok := f.ids[id.String()]
	return v, ok
}

// newSyncContext roots the build dir and the root template under dir.
func newSyncContext(dir string, params map[string]string, ids domain.PhysicalIDMapping) *fakeSyncContext {
	return &fakeSyncContext{
		build:  domain.BuildContext{BuildDir: filepath.Join(dir, "build")},
		deploy: domain.DeployContext{StackName: "app"},
		stacks: []domain.Stack{{
			Name:       "app",
			IsRoot:     true,
			Location:   filepath.Join(dir, "template.yaml"),
			Parameters: params,
		}},
		ids: ids,
	}
}

type fakeUploader struct {
	bucket, prefix, ext string
	size                int
	loc                 s3.Location
	err                 error
}

func (u *fakeUploader) Upload(_ context.Context, bucket, prefix string, body []byte, ext string, _ ports.Logger) (s3.Location, error) {
	u.bucket, u.prefix, u.ext, u.size = bucket, prefix, ext, len(body)
	return u.loc, u.err
}

type fakeRegistry struct {
	auth string
	err  error
}

func (r *fakeRegistry) RegistryAuth(context.Context, ports.Logger) (string, error) {
	return r.auth, r.err
}

func baseDeps() Dependencies {
	return Dependencies{
		Limiter:      &limiter.DefaultRateLimiter{},
		ErrorHandler: &aws_errors.DefaultErrorHandler{},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func lowerInlineLimit(t *testing.T, n int) {
	t.Helper()
	prev := maxDirectUploadBytes
	maxDirectUploadBytes = n
	t.Cleanup(func() { maxDirectUploadBytes = prev })
}
