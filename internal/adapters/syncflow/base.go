package syncflow

import (
	"context"
	stderrs "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/s3"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

// maxDirectUploadBytes is the largest archive Lambda accepts inline.
var maxDirectUploadBytes = 50 * 1024 * 1024

// ErrInfraSyncRequired marks a change that code sync cannot apply. Match it
// with errors.Is or by code CodeInfraSyncRequired.
var ErrInfraSyncRequired = errors.New(errors.CodeInfraSyncRequired, "infrastructure sync required")

func infraSyncRequired(id domain.ResourceIdentifier, reason string) error {
	return errors.WrapUserFacing(ErrInfraSyncRequired, errors.CodeInfraSyncRequired,
		fmt.Sprintf("%s cannot be code synced: %s", id, reason),
		"Run a full deploy for this resource.")
}

type ArtifactUploader interface {
	Upload(ctx context.Context, bucket, prefix string, body []byte, ext string, logger ports.Logger) (s3.Location, error)
}

type RegistryAuthenticator interface {
	RegistryAuth(ctx context.Context, logger ports.Logger) (string, error)
}

// Dependencies are the AWS and docker clients the flows call into.
type Dependencies struct {
	Lambda       shared.LambdaClientInterface
	APIGateway   shared.APIGatewayClientInterface
	APIGatewayV2 shared.APIGatewayV2ClientInterface
	Uploader     ArtifactUploader
	Registry     RegistryAuthenticator
	Limiter      shared.RateLimiter
	ErrorHandler shared.ErrorHandler

	// Docker is resolved lazily so zip only syncs never need a daemon.
	Docker func() (shared.DockerClientInterface, error)
}

type base struct {
	name     string
	id       domain.ResourceIdentifier
	kind     domain.ResourceKind
	resource domain.Resource
	sc       ports.SyncContext
	deps     Dependencies
	logger   ports.Logger

	physicalID string
}

func newBase(name string, kind domain.ResourceKind, sc ports.SyncContext, id domain.ResourceIdentifier, resource domain.Resource, deps Dependencies) base {
	return base{
		name:     name,
		id:       id,
		kind:     kind,
		resource: resource,
		sc:       sc,
		deps:     deps,
		logger: sc.Logger().WithFields(map[string]any{
			"sync_flow": name,
			"resource":  id.String(),
		}),
	}
}

func (b *base) Name() string                          { return b.name }
func (b *base) Identifier() domain.ResourceIdentifier { return b.id }
func (b *base) Kind() domain.ResourceKind             { return b.kind }
func (b *base) PhysicalID() string                    { return b.physicalID }

func (b *base) resolvePhysicalID() (string, error) {
	physicalID, ok := b.sc.PhysicalID(b.id)
	if !ok || physicalID == "" {
		return "", infraSyncRequired(b.id, "resource is not deployed yet")
	}
	b.physicalID = physicalID
	return physicalID, nil
}

// call waits on the limiter, runs fn and maps its error.
func (b *base) call(ctx context.Context, service, operation string, fn func() error) error {
	if err := b.deps.Limiter.Wait(ctx, b.logger); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return b.deps.ErrorHandler.Handle(service, operation, err, ctx)
	}
	return nil
}

// stringProperty reads a literal string, resolving a {"Ref": param} against
// the stack parameters.
func (b *base) stringProperty(name string) string {
	v, ok := b.resource.Property(name)
	if !ok {
		return ""
	}
	switch tv := v.(type) {
	case string:
		return tv
	case map[string]any:
		ref, ok := tv["Ref"].(string)
		if !ok || len(tv) != 1 {
			return ""
		}
		if stack, found := b.stack(); found {
			return stack.Parameters[ref]
		}
	}
	return ""
}

func (b *base) stack() (domain.Stack, bool) {
	for _, s := range b.sc.Stacks() {
		if s.StackPath() == b.id.StackPath {
			return s, true
		}
	}
	return domain.Stack{}, false
}

// localPath resolves a template relative path against BaseDir, or the
// directory of the template that declared the resource.
func (b *base) localPath(p string) string {
	bc := b.sc.BuildContext()
	if bc.BaseDir == "" {
		if s, ok := b.stack(); ok && s.Location != "" {
			bc.BaseDir = filepath.Dir(s.Location)
		}
	}
	return bc.ResolvePath(p)
}

// artifactDir prefers the build output and falls back to the source path
// named by one of props.
func (b *base) artifactDir(props ...string) (string, error) {
	dir := b.sc.BuildContext().ArtifactDir(b.id)
	if isDir(dir) {
		return dir, nil
	}
	for _, prop := range props {
		src := b.stringProperty(prop)
		if src == "" || strings.Contains(src, "://") {
			continue
		}
		if p := b.localPath(src); isDir(p) {
			return p, nil
		}
	}
	return "", errors.NewUserFacing(errors.CodeArtifactError,
		fmt.Sprintf("no build artifact for %s at %s", b.id, dir),
		"Run the build step before syncing.")
}

func (b *base) readDefinition(uriProp string) ([]byte, error) {
	uri := b.stringProperty(uriProp)
	if uri == "" {
		if _, inline := b.resource.Property(domain.PropDefinitionBody); inline {
			return nil, infraSyncRequired(b.id, "the API definition is inline in the template")
		}
		return nil, infraSyncRequired(b.id, "no local "+uriProp+" to sync from")
	}
	if strings.Contains(uri, "://") {
		return nil, infraSyncRequired(b.id, "the API definition is not a local file")
	}

	path := b.localPath(uri)
	body, err := os.ReadFile(path)
	if err != nil {
		if stderrs.Is(err, os.ErrNotExist) {
			return nil, errors.NewUserFacing(errors.CodeArtifactError,
				fmt.Sprintf("API definition %s for %s does not exist", path, b.id),
				"Check "+uriProp+" in the template.")
		}
		return nil, errors.Wrap(err, errors.CodeArtifactError, "failed to read API definition")
	}
	return body, nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
