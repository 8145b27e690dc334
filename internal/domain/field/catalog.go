package field

import (
	"fmt"

	"github.com/kailas-cloud/advsearch/internal/domain"
)

// Catalog is the ordered, read-only set of searchable fields.
// It is built once at startup and shared by all requests.
type Catalog struct {
	fields []Descriptor
	byName map[string]int
}

// NewCatalog creates a Catalog, rejecting duplicate names.
func NewCatalog(fields []Descriptor) (*Catalog, error) {
	c := &Catalog{
		fields: make([]Descriptor, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, dup := c.byName[f.Name()]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name())
		}
		c.byName[f.Name()] = len(c.fields)
		c.fields = append(c.fields, f)
	}
	return c, nil
}

// All returns every field in catalog order.
func (c *Catalog) All() []Descriptor {
	out := make([]Descriptor, len(c.fields))
	copy(out, c.fields)
	return out
}

// Filterable returns the fields offered as filters, in catalog order.
func (c *Catalog) Filterable() []Descriptor {
	return c.selectFields(Descriptor.Filterable)
}

// Freetext returns the freetext-searchable fields, in catalog order.
func (c *Catalog) Freetext() []Descriptor {
	return c.selectFields(Descriptor.FreetextSearchable)
}

// Get returns the named field or ErrUnknownField.
func (c *Catalog) Get(name string) (Descriptor, error) {
	i, ok := c.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
	return c.fields[i], nil
}

func (c *Catalog) selectFields(keep func(Descriptor) bool) []Descriptor {
	var out []Descriptor
	for _, f := range c.fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
