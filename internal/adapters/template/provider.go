package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/pkg/convert"
)

const (
	ProviderTypeSAMTemplate = "sam-template"

	maxNestingDepth = 10
)

type Config struct {
	TemplatePath       string            `mapstructure:"path" validate:"required"`
	StackName          string            `mapstructure:"stack_name"`
	ParameterOverrides map[string]string `mapstructure:"parameter_overrides"`
}

// Provider loads the root template and every nested stack template that lives
// on the local filesystem.
type Provider struct {
	cfg    Config
	parser *templateParser
	logger ports.Logger
}

func NewProvider(cfg Config, logger ports.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil for template provider")
	}
	if cfg.TemplatePath == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "template path is required",
			"Pass --template or set template.path in the config file.")
	}

	plog := logger.WithFields(map[string]any{
		"provider": ProviderTypeSAMTemplate,
		"template": cfg.TemplatePath,
	})
	return &Provider{
		cfg:    cfg,
		parser: newTemplateParser(plog),
		logger: plog,
	}, nil
}

func (p *Provider) Type() string { return ProviderTypeSAMTemplate }

// LoadStacks returns the root stack first followed by nested stacks in depth
// first declaration order.
func (p *Provider) LoadStacks(ctx context.Context) ([]domain.Stack, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rootPath, err := filepath.Abs(p.cfg.TemplatePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeTemplateReadError, "failed to resolve template path")
	}

	root := domain.Stack{
		Name:     p.cfg.StackName,
		Location: rootPath,
		IsRoot:   true,
	}
	var stacks []domain.Stack
	if err := p.load(ctx, root, p.cfg.ParameterOverrides, map[string]bool{}, 0, &stacks); err != nil {
		return nil, err
	}
	p.logger.Debugf(ctx, "Loaded %d stacks", len(stacks))
	return stacks, nil
}

func (p *Provider) load(
	ctx context.Context,
	stack domain.Stack,
	overrides map[string]string,
	chain map[string]bool,
	depth int,
	out *[]domain.Stack,
) error {
	if depth > maxNestingDepth {
		return errors.New(errors.CodeNestedStackError,
			fmt.Sprintf("nested stacks deeper than %d levels at %s", maxNestingDepth, stack.StackPath()))
	}
	if chain[stack.Location] {
		return errors.NewUserFacing(errors.CodeNestedStackError,
			fmt.Sprintf("nested stack %s includes its own ancestor %s", stack.StackPath(), stack.Location),
			"Remove the circular Location/TemplateURL reference.")
	}

	doc, err := p.parser.parseFile(ctx, stack.Location)
	if err != nil {
		return err
	}

	stack.Parameters = resolveParameters(doc.Parameters, overrides)
	stack.Resources = make(map[string]domain.Resource, len(doc.Resources))
	stack.ResourceOrder = append([]string(nil), doc.ResourceOrder...)
	for id, raw := range doc.Resources {
		stack.Resources[id] = normalizeResource(raw)
	}
	*out = append(*out, stack)

	chain[stack.Location] = true
	defer delete(chain, stack.Location)

	baseDir := filepath.Dir(stack.Location)
	for _, logicalID := range stack.OrderedResourceIDs() {
		res := stack.Resources[logicalID]
		location, ok := nestedLocation(res)
		if !ok {
			continue
		}
		if strings.Contains(location, "://") {
			p.logger.Debugf(ctx, "Skipping remote nested stack %s at %s", logicalID, location)
			continue
		}
		if !filepath.IsAbs(location) {
			location = filepath.Join(baseDir, location)
		}
		if _, err := os.Stat(location); err != nil {
			p.logger.Warnf(ctx, "Nested stack %s points at %s which cannot be read: %v", logicalID, location, err)
			continue
		}

		child := domain.Stack{
			Name:            logicalID,
			ParentStackPath: stack.StackPath(),
			Location:        location,
		}
		if err := p.load(ctx, child, stringParameters(res, stack.Parameters), chain, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// normalizeResource fills in defaults the service applies on deploy, so
// an omitted PackageType on a function reads as Zip.
func normalizeResource(raw RawResource) domain.Resource {
	res := domain.Resource{
		Type:       raw.Type,
		Properties: raw.Properties,
		Metadata:   raw.Metadata,
	}
	if kind, ok := res.Kind(); ok && kind == domain.KindFunction {
		if _, set := res.Property(domain.PropPackageType); !set {
			props := make(map[string]any, len(res.Properties)+1)
			for k, v := range res.Properties {
				props[k] = v
			}
			props[domain.PropPackageType] = string(domain.PackageTypeZip)
			res.Properties = props
		}
	}
	return res
}

func nestedLocation(res domain.Resource) (string, bool) {
	switch res.Type {
	case domain.TypeServerlessApplication:
		if loc := res.StringProperty(domain.PropLocation); loc != "" {
			return loc, true
		}
	case domain.TypeCloudFormationStack:
		if loc := res.StringProperty(domain.PropTemplateURL); loc != "" {
			return loc, true
		}
	}
	return "", false
}

// stringParameters reads the Parameters a parent passes to a nested stack.
// A Ref to a parent parameter is resolved; other intrinsics are skipped.
func stringParameters(res domain.Resource, parent map[string]string) map[string]string {
	raw, ok := res.Property(domain.PropParameters)
	if !ok {
		return nil
	}
	out := convert.ScalarMap(raw)
	m, _ := raw.(map[string]any)
	for name, v := range m {
		ref, ok := v.(map[string]any)
		if !ok || len(ref) != 1 {
			continue
		}
		target, _ := ref["Ref"].(string)
		if value, found := parent[target]; found {
			out[name] = value
		}
	}
	return out
}

func resolveParameters(declared map[string]Parameter, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(declared))
	for name, p := range declared {
		if def, ok := convert.Scalar(p.Default); ok {
			out[name] = def
		}
	}
	for name, v := range overrides {
		out[name] = v
	}
	return out
}

var _ ports.TemplateProvider = (*Provider)(nil)
