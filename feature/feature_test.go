package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericAttribute(t *testing.T) {
	a := NewNumericAttribute("age")
	assert.Equal(t, "age", a.Name())
	assert.Equal(t, Numeric, a.Kind())
	assert.Nil(t, a.Categories())
	assert.Equal(t, 0, a.NumCategories())

	_, err := a.CodeFor("young")
	assert.Error(t, err)
	_, err = a.ValueFor(0)
	assert.Error(t, err)
}

func TestCategoricalAttribute(t *testing.T) {
	a, err := NewCategoricalAttribute("color", []string{"red", "green", "blue"})
	require.NoError(t, err)
	assert.Equal(t, "color", a.Name())
	assert.Equal(t, Categorical, a.Kind())
	assert.Equal(t, []string{"red", "green", "blue"}, a.Categories())
	assert.Equal(t, 3, a.NumCategories())

	code, err := a.CodeFor("green")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	_, err = a.CodeFor("yellow")
	assert.Error(t, err)

	value, err := a.ValueFor(2)
	require.NoError(t, err)
	assert.Equal(t, "blue", value)
	_, err = a.ValueFor(3)
	assert.Error(t, err)
	_, err = a.ValueFor(-1)
	assert.Error(t, err)
}

func TestCategoricalAttributeRejectsInvalidCategorySets(t *testing.T) {
	_, err := NewCategoricalAttribute("color", []string{"red"})
	assert.Error(t, err, "single category")
	_, err = NewCategoricalAttribute("color", nil)
	assert.Error(t, err, "no categories")
	_, err = NewCategoricalAttribute("color", []string{"red", "blue", "red"})
	assert.Error(t, err, "duplicate category")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "numeric", Numeric.String())
	assert.Equal(t, "categorical", Categorical.String())
}

func TestSchema(t *testing.T) {
	color, err := NewCategoricalAttribute("color", []string{"red", "green"})
	require.NoError(t, err)
	s, err := NewSchema([]*Attribute{NewNumericAttribute("age"), color})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Dimensions())
	assert.Equal(t, "age", s.Attribute(0).Name())
	assert.Equal(t, "color", s.Attribute(1).Name())
	require.Len(t, s.Attributes(), 2)

	d, a := s.AttributeNamed("color")
	assert.Equal(t, 1, d)
	require.NotNil(t, a)
	assert.Equal(t, Categorical, a.Kind())

	d, a = s.AttributeNamed("height")
	assert.Equal(t, -1, d)
	assert.Nil(t, a)
}

func TestNewSchemaRejectsInvalidAttributeSets(t *testing.T) {
	_, err := NewSchema(nil)
	assert.Error(t, err, "no attributes")
	_, err = NewSchema([]*Attribute{NewNumericAttribute("age"), NewNumericAttribute("age")})
	assert.Error(t, err, "duplicate attribute name")
}
