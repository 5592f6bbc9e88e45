package feature

import "fmt"

/*
Kind tells numeric attributes apart from categorical ones.
*/
type Kind int

const (
	// Numeric attributes take real values
	Numeric Kind = iota
	// Categorical attributes take one of a finite set of values,
	// stored as small non-negative integer codes
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("unknown kind %d", int(k))
}

/*
Attribute describes one dimension of a dataset: its name, whether it
is numeric or categorical and, for categorical attributes, the ordered
set of values it can take. The position of a value in that set is the
integer code under which the dimension stores it.
*/
type Attribute struct {
	name       string
	kind       Kind
	categories []string
}

/*
NewNumericAttribute takes a name string and returns an attribute for a
dimension holding real values.
*/
func NewNumericAttribute(name string) *Attribute {
	return &Attribute{name: name, kind: Numeric}
}

/*
NewCategoricalAttribute takes a name string and a slice with the values
the attribute can take and returns an attribute for a dimension holding
category codes, or an error if fewer than 2 values are given: a
categorical dimension with a single value can never be split and is
rejected upfront.
*/
func NewCategoricalAttribute(name string, categories []string) (*Attribute, error) {
	if len(categories) < 2 {
		return nil, fmt.Errorf("categorical attribute %s needs at least 2 categories, got %d", name, len(categories))
	}
	seen := make(map[string]bool)
	for _, c := range categories {
		if seen[c] {
			return nil, fmt.Errorf("categorical attribute %s declares category %q twice", name, c)
		}
		seen[c] = true
	}
	cs := make([]string, len(categories))
	copy(cs, categories)
	return &Attribute{name: name, kind: Categorical, categories: cs}, nil
}

/*
Name returns a string with the name of the attribute.
*/
func (a *Attribute) Name() string {
	return a.name
}

/*
Kind returns whether the attribute is Numeric or Categorical.
*/
func (a *Attribute) Kind() Kind {
	return a.kind
}

/*
Categories returns a string slice with the values available for a
categorical attribute, in code order. It is nil for numeric attributes.
*/
func (a *Attribute) Categories() []string {
	return a.categories
}

/*
NumCategories returns the number of values a categorical attribute can
take, and 0 for numeric attributes.
*/
func (a *Attribute) NumCategories() int {
	return len(a.categories)
}

/*
CodeFor takes a category value string and returns the integer code the
dimension stores it under, or an error if the attribute is numeric or
the value is not among its categories.
*/
func (a *Attribute) CodeFor(value string) (int, error) {
	if a.kind != Categorical {
		return 0, fmt.Errorf("numeric attribute %s has no category codes", a.name)
	}
	for i, c := range a.categories {
		if c == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("categorical attribute %s got unknown value %q", a.name, value)
}

/*
ValueFor takes an integer code and returns the category value it stands
for, or an error if the attribute is numeric or the code is out of
range.
*/
func (a *Attribute) ValueFor(code int) (string, error) {
	if a.kind != Categorical {
		return "", fmt.Errorf("numeric attribute %s has no category codes", a.name)
	}
	if code < 0 || code >= len(a.categories) {
		return "", fmt.Errorf("categorical attribute %s has no code %d", a.name, code)
	}
	return a.categories[code], nil
}

func (a *Attribute) String() string {
	return a.name
}

/*
Schema is the ordered sequence of attributes describing every dimension
of a dataset. It is immutable once constructed; every dataset presented
against a schema must have exactly as many dimensions as the schema.
*/
type Schema struct {
	attributes []*Attribute
}

/*
NewSchema takes a slice of attributes and returns a schema describing a
dataset with those dimensions in that order, or an error if no
attributes are given or two attributes share a name.
*/
func NewSchema(attributes []*Attribute) (*Schema, error) {
	if len(attributes) == 0 {
		return nil, fmt.Errorf("schema needs at least one attribute")
	}
	seen := make(map[string]bool)
	for _, a := range attributes {
		if seen[a.Name()] {
			return nil, fmt.Errorf("schema declares attribute %s twice", a.Name())
		}
		seen[a.Name()] = true
	}
	as := make([]*Attribute, len(attributes))
	copy(as, attributes)
	return &Schema{attributes: as}, nil
}

/*
Dimensions returns the number of dimensions the schema describes.
*/
func (s *Schema) Dimensions() int {
	return len(s.attributes)
}

/*
Attribute returns the attribute describing the given dimension.
*/
func (s *Schema) Attribute(dimension int) *Attribute {
	return s.attributes[dimension]
}

/*
Attributes returns the schema's attributes in dimension order.
*/
func (s *Schema) Attributes() []*Attribute {
	as := make([]*Attribute, len(s.attributes))
	copy(as, s.attributes)
	return as
}

/*
AttributeNamed takes a name and returns the dimension index and the
attribute with that name, or -1 and nil if the schema has no such
attribute.
*/
func (s *Schema) AttributeNamed(name string) (int, *Attribute) {
	for i, a := range s.attributes {
		if a.Name() == name {
			return i, a
		}
	}
	return -1, nil
}
