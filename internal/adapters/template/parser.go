package template

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

type (
	// Document is a parsed template with the resource declaration order kept.
	Document struct {
		Parameters    map[string]Parameter
		Resources     map[string]RawResource
		ResourceOrder []string
	}

	Parameter struct {
		Type    string
		Default any
	}

	RawResource struct {
		Type       string         `json:"Type"`
		Properties map[string]any `json:"Properties"`
		Metadata   map[string]any `json:"Metadata"`
	}
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// templateParser caches parsed documents by path. Nested stacks that point at
// the same template are parsed once.
type templateParser struct {
	mu     sync.RWMutex
	cache  map[string]*Document
	logger ports.Logger
}

func newTemplateParser(logger ports.Logger) *templateParser {
	return &templateParser{
		cache:  make(map[string]*Document),
		logger: logger.WithFields(map[string]any{"component": "template_parser"}),
	}
}

func (tp *templateParser) parseFile(ctx context.Context, path string) (*Document, error) {
	tp.mu.RLock()
	doc, ok := tp.cache[path]
	tp.mu.RUnlock()
	if ok {
		return doc, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeTemplateReadError,
			fmt.Sprintf("failed to read template %s", path), "Check --template points at a built SAM template.")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.NewUserFacing(errors.CodeTemplateParseError, fmt.Sprintf("template %s is empty", path), "")
	}

	doc, err = parseDocument(raw)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeTemplateParseError,
			fmt.Sprintf("invalid template %s", path), "Make sure the template is valid YAML or JSON.")
	}
	tp.logger.Debugf(ctx, "Parsed %s with %d resources", path, len(doc.Resources))

	tp.mu.Lock()
	tp.cache[path] = doc
	tp.mu.Unlock()
	return doc, nil
}

// parseDocument accepts JSON or YAML, including the short form intrinsic
// function tags (!Ref, !GetAtt, !Sub, ...).
func parseDocument(raw []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSON(trimmed)
	}
	return parseYAML(raw)
}

func parseJSON(raw []byte) (*Document, error) {
	var top struct {
		Parameters map[string]Parameter   `json:"Parameters"`
		Resources  map[string]RawResource `json:"Resources"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, err
	}

	doc := &Document{Parameters: top.Parameters, Resources: top.Resources}
	doc.ResourceOrder = jsonResourceOrder(raw)
	return doc, nil
}

// jsonResourceOrder walks the token stream since maps lose key order.
func jsonResourceOrder(raw []byte) []string {
	iter := jsoniter.ParseBytes(json, raw)
	var order []string
	for field := iter.ReadObject(); field != ""; field = iter.ReadObject() {
		if field != "Resources" {
			iter.Skip()
			continue
		}
		for id := iter.ReadObject(); id != ""; id = iter.ReadObject() {
			order = append(order, id)
			iter.Skip()
		}
	}
	return order
}

func parseYAML(raw []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("template has no document")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("template root must be a mapping, got %s", nodeKind(top))
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i].Value, top.Content[i+1]
		switch key {
		case "Parameters":
			params, err := nodeToValue(value)
			if err != nil {
				return nil, fmt.Errorf("parameters section: %w", err)
			}
			doc.Parameters = toParameters(params)
		case "Resources":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("resources section must be a mapping, got %s", nodeKind(value))
			}
			doc.Resources = make(map[string]RawResource, len(value.Content)/2)
			for j := 0; j+1 < len(value.Content); j += 2 {
				id := value.Content[j].Value
				v, err := nodeToValue(value.Content[j+1])
				if err != nil {
					return nil, fmt.Errorf("resource %s: %w", id, err)
				}
				doc.Resources[id] = toRawResource(v)
				doc.ResourceOrder = append(doc.ResourceOrder, id)
			}
		}
	}
	return doc, nil
}

// nodeToValue converts a node into plain maps, slices and scalars. Short form
// intrinsics become their long form, e.g. !GetAtt A.Arn -> {"Fn::GetAtt": ["A", "Arn"]}.
func nodeToValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		return nodeToValue(n.Alias)
	}

	var value any
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		value = m
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		value = s
	case yaml.ScalarNode:
		if isIntrinsicTag(n.Tag) {
			value = n.Value
		} else if err := n.Decode(&value); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unexpected %s at line %d", nodeKind(n), n.Line)
	}

	if !isIntrinsicTag(n.Tag) {
		return value, nil
	}
	return intrinsic(n.Tag, value), nil
}

func isIntrinsicTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

func intrinsic(tag string, value any) map[string]any {
	name := strings.TrimPrefix(tag, "!")
	switch name {
	case "Ref", "Condition":
		return map[string]any{name: value}
	case "GetAtt":
		if s, ok := value.(string); ok {
			resource, attr, _ := strings.Cut(s, ".")
			return map[string]any{"Fn::GetAtt": []any{resource, attr}}
		}
	}
	return map[string]any{"Fn::" + name: value}
}

func toParameters(v any) map[string]Parameter {
	m, _ := v.(map[string]any)
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]Parameter, len(m))
	for name, raw := range m {
		def, _ := raw.(map[string]any)
		p := Parameter{Default: def["Default"]}
		p.Type, _ = def["Type"].(string)
		out[name] = p
	}
	return out
}

func toRawResource(v any) RawResource {
	m, _ := v.(map[string]any)
	r := RawResource{}
	r.Type, _ = m["Type"].(string)
	r.Properties, _ = m["Properties"].(map[string]any)
	r.Metadata, _ = m["Metadata"].(map[string]any)
	return r
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
