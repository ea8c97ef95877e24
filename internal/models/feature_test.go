package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrConversions(t *testing.T) {
	f := NewFeature()
	f.SetAttr("s", "42")
	f.SetAttr("i", 7)
	f.SetAttr("f", 3.5)

	assert.Equal(t, "42", f.AttrString("s"))
	assert.Equal(t, 42, f.AttrInt("s"))
	assert.Equal(t, 42.0, f.AttrFloat("s"))

	assert.Equal(t, "7", f.AttrString("i"))
	assert.Equal(t, 7.0, f.AttrFloat("i"))

	assert.Equal(t, 3, f.AttrInt("f"))
	assert.Equal(t, "3.5", f.AttrString("f"))

	assert.Equal(t, "", f.AttrString("missing"))
	assert.Equal(t, 0, f.AttrInt("missing"))
	assert.Equal(t, 0.0, f.AttrFloat("missing"))
}

func TestCloneIndependentAttrs(t *testing.T) {
	f := NewFeature()
	f.SetAttr("ecosite", "UD")

	c := f.Clone()
	c.SetAttr("ecosite", "WT")
	c.SetAttr("extra", 1)

	assert.Equal(t, "UD", f.AttrString("ecosite"))
	_, has := f.Attrs["extra"]
	assert.False(t, has)
}

func TestFieldNamesSortedUnion(t *testing.T) {
	fc := NewFeatureCollection(GeomPoint)
	a := NewFeature()
	a.SetAttr("b_field", 1)
	a.SetAttr("a_field", 1)
	fc.Add(a)
	b := NewFeature()
	b.SetAttr("c_field", 1)
	b.SetAttr("a_field", 2)
	fc.Add(b)

	assert.Equal(t, []string{"a_field", "b_field", "c_field"}, fc.FieldNames())
}
