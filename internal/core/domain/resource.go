package domain

import (
	"strings"
)

// StackPathSeparator joins nested stack names and the logical id in a
// ResourceIdentifier, e.g. "ChildStack/GrandChild/Function1".
const StackPathSeparator = "/"

// ResourceIdentifier names a resource across nested stacks. The root stack has
// an empty stack path.
type ResourceIdentifier struct {
	StackPath string
	LogicalID string
}

func ParseResourceIdentifier(raw string) ResourceIdentifier {
	raw = strings.Trim(strings.TrimSpace(raw), StackPathSeparator)
	idx := strings.LastIndex(raw, StackPathSeparator)
	if idx < 0 {
		return ResourceIdentifier{LogicalID: raw}
	}
	return ResourceIdentifier{StackPath: raw[:idx], LogicalID: raw[idx+1:]}
}

func NewResourceIdentifier(stackPath, logicalID string) ResourceIdentifier {
	return ResourceIdentifier{StackPath: stackPath, LogicalID: logicalID}
}

func (r ResourceIdentifier) String() string {
	if r.StackPath == "" {
		return r.LogicalID
	}
	return r.StackPath + StackPathSeparator + r.LogicalID
}

func (r ResourceIdentifier) IsZero() bool {
	return r.LogicalID == ""
}

// Resource is one entry of a template's Resources section.
type Resource struct {
	Type       string
	Properties map[string]any
	Metadata   map[string]any
}

// Kind reports the resource kind for the declared type; ok is false for
// types without a mapping.
func (r Resource) Kind() (ResourceKind, bool) {
	return KindForType(r.Type)
}

func (r Resource) Property(name string) (any, bool) {
	if r.Properties == nil {
		return nil, false
	}
	v, ok := r.Properties[name]
	return v, ok
}

// StringProperty returns the property only when it is a plain string.
// Intrinsic functions (decoded as maps) are reported as absent.
func (r Resource) StringProperty(name string) string {
	v, ok := r.Property(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (r Resource) MetadataString(name string) string {
	if r.Metadata == nil {
		return ""
	}
	s, _ := r.Metadata[name].(string)
	return s
}

// PackageType returns Properties.PackageType verbatim; an absent or non
// string value yields "".
func (r Resource) PackageType() PackageType {
	return PackageType(r.StringProperty(PropPackageType))
}
