package toolkit

import (
	"fmt"
)

// Kind identifies a descriptor namespace within the store.
type Kind string

const (
	// KindModule is a capability module descriptor.
	KindModule Kind = "module"

	// KindAgent is an agent descriptor.
	KindAgent Kind = "agent"
)

// IsValid checks if a kind is a known descriptor kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindModule, KindAgent:
		return true
	}
	return false
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Dir returns the store subdirectory holding descriptors of this kind.
func (k Kind) Dir() string {
	switch k {
	case KindModule:
		return "modules"
	case KindAgent:
		return "agents"
	}
	return ""
}

// Descriptor is an immutable capability descriptor (module or agent)
// loaded from the store. The body is consumed verbatim by templates.
type Descriptor struct {
	// ID is the identifier, unique within its kind's namespace.
	ID string

	// Kind is the descriptor namespace.
	Kind Kind

	// Name is the display name; falls back to ID when absent.
	Name string

	// Description is the human description.
	Description string

	// Version is the semantic version tag.
	Version string

	// Category is an optional grouping tag.
	Category string

	// Requires lists identifiers that must also be selected.
	Requires []string

	// Conflicts lists identifiers that must not be selected.
	Conflicts []string

	// Body is the free-form guidance content.
	Body string
}

// descriptorFromDocument builds a Descriptor from a parsed document,
// validating the metadata block against the descriptor schema. A
// missing metadata block yields a descriptor with only ID and body set;
// schema violations (e.g. requires not a list of strings) are errors.
func descriptorFromDocument(kind Kind, id string, doc *Document) (*Descriptor, error) {
	d := &Descriptor{
		ID:   id,
		Kind: kind,
		Body: doc.Body,
	}

	if doc.Frontmatter == nil {
		return d, nil
	}

	var err error
	if d.Name, err = optionalString(doc.Frontmatter, "name"); err != nil {
		return nil, err
	}
	if d.Description, err = optionalString(doc.Frontmatter, "description"); err != nil {
		return nil, err
	}
	if d.Version, err = optionalString(doc.Frontmatter, "version"); err != nil {
		return nil, err
	}
	if d.Category, err = optionalString(doc.Frontmatter, "category"); err != nil {
		return nil, err
	}
	if d.Requires, err = optionalStringList(doc.Frontmatter, "requires"); err != nil {
		return nil, err
	}
	if d.Conflicts, err = optionalStringList(doc.Frontmatter, "conflicts"); err != nil {
		return nil, err
	}

	return d, nil
}

// optionalString reads a string field from frontmatter, tolerating its
// absence but not a wrong type.
func optionalString(fm map[string]any, key string) (string, error) {
	v, ok := fm[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("frontmatter field %q must be a string, got %T", key, v)
	}
	return s, nil
}

// optionalStringList reads a list-of-strings field from frontmatter.
func optionalStringList(fm map[string]any, key string) ([]string, error) {
	v, ok := fm[key]
	if !ok || v == nil {
		return nil, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("frontmatter field %q must be a list, got %T", key, v)
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("frontmatter field %q[%d] must be a string, got %T", key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
