package domain

// Stack is a template plus its position in the nested stack tree.
type Stack struct {
	// Name is the logical id of the nested stack resource in its parent, or
	// the deployed stack name for the root.
	Name string

	// ParentStackPath is empty for the root and for its direct children.
	ParentStackPath string

	Location   string
	Parameters map[string]string
	Resources  map[string]Resource

	// ResourceOrder keeps the template's declaration order.
	ResourceOrder []string

	IsRoot bool
}

// StackPath is "" for the root stack, "Child" for a direct child and
// "Child/GrandChild" further down.
func (s Stack) StackPath() string {
	if s.IsRoot {
		return ""
	}
	if s.ParentStackPath == "" {
		return s.Name
	}
	return s.ParentStackPath + StackPathSeparator + s.Name
}

func (s Stack) Identifier(logicalID string) ResourceIdentifier {
	return NewResourceIdentifier(s.StackPath(), logicalID)
}

// OrderedResourceIDs lists resources in declaration order, falling back to
// map order for ids missing from ResourceOrder.
func (s Stack) OrderedResourceIDs() []string {
	seen := make(map[string]struct{}, len(s.Resources))
	ids := make([]string, 0, len(s.Resources))
	for _, id := range s.ResourceOrder {
		if _, ok := s.Resources[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for id := range s.Resources {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetResourceByID finds the stack whose path matches the identifier and
// returns the resource with its logical id.
func GetResourceByID(stacks []Stack, id ResourceIdentifier) (Resource, bool) {
	for _, stack := range stacks {
		if stack.StackPath() != id.StackPath {
			continue
		}
		if res, ok := stack.Resources[id.LogicalID]; ok {
			return res, true
		}
	}
	return Resource{}, false
}

// PhysicalIDMapping maps ResourceIdentifier.String() to the provider assigned id.
type PhysicalIDMapping map[string]string
