package domain

import (
	"path/filepath"
	"strings"
)

const DefaultBuildDir = ".aws-sam/build"

// BuildContext describes where the build step left its artifacts.
type BuildContext struct {
	BuildDir string

	// BaseDir resolves relative CodeUri/ContentUri/DefinitionUri values.
	BaseDir string
}

// ArtifactDir is the directory the build step writes for a function or
// layer: <build dir>/<stack path>/<logical id>.
func (b BuildContext) ArtifactDir(id ResourceIdentifier) string {
	dir := b.BuildDir
	if dir == "" {
		dir = DefaultBuildDir
	}
	parts := []string{dir}
	if id.StackPath != "" {
		parts = append(parts, strings.Split(id.StackPath, StackPathSeparator)...)
	}
	parts = append(parts, id.LogicalID)
	return filepath.Join(parts...)
}

// ResolvePath turns a template relative path into one usable from the
// working directory. Remote locations (s3://, https://) are returned as is.
func (b BuildContext) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	if b.BaseDir == "" {
		return p
	}
	return filepath.Join(b.BaseDir, p)
}

// DeployContext carries what is known about the deployed stack.
type DeployContext struct {
	StackName       string
	Region          string
	Profile         string
	S3Bucket        string
	S3Prefix        string
	ImageRepository string
	Tags            map[string]string
}
