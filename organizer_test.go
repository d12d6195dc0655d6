package toolschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeMethodSchema(t *testing.T) *AggregatedSchema {
	t.Helper()
	s, err := Aggregate(
		NewClass("A").Method("m1", "One.").Method("m2", "Two.").Method("m3", "Three."),
		NewClass("B").Method("b1", "B one."),
	)
	require.NoError(t, err)
	return s
}

func TestOrganize_Exclusion(t *testing.T) {
	s := threeMethodSchema(t)
	c := NewClassificationMap()
	c.Set("A", "m1", true)
	c.Set("A", "m2", false)

	got := Organize(s, c)
	require.Len(t, got, 1)
	want, _ := s.Method("A", "m1")
	assert.Equal(t, want.Function, got[0])
	assert.Equal(t, []string{"m1"}, got.Names())
}

func TestOrganize_DefaultSelectsEverythingInOrder(t *testing.T) {
	s := threeMethodSchema(t)
	got := Organize(s, GenerateClassification(s))
	assert.Equal(t, []string{"m1", "m2", "m3", "b1"}, got.Names())
}

func TestOrganize_FollowsSchemaOrderNotClassificationOrder(t *testing.T) {
	s := threeMethodSchema(t)
	c := NewClassificationMap()
	c.Set("B", "b1", true)
	c.Set("A", "m3", true)
	c.Set("A", "m1", true)
	assert.Equal(t, []string{"m1", "m3", "b1"}, Organize(s, c).Names())
}

func TestOrganize_ToleratesMismatch(t *testing.T) {
	s := threeMethodSchema(t)
	c := NewClassificationMap()
	c.Set("Ghost", "m1", true)
	c.Set("A", "ghost", true)
	c.AddClass("B")
	got := Organize(s, c)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOrganize_NilInputs(t *testing.T) {
	s := threeMethodSchema(t)
	assert.Equal(t, OrganizedList{}, Organize(nil, NewClassificationMap()))
	assert.Equal(t, OrganizedList{}, Organize(s, nil))

	data, err := MarshalIndent(Organize(s, nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestOrganizedList_Tools(t *testing.T) {
	s := threeMethodSchema(t)
	list := Organize(s, GenerateClassification(s))
	tools := list.Tools()
	require.Len(t, tools, len(list))
	for i, tool := range tools {
		assert.Equal(t, "function", tool.Type)
		assert.Equal(t, list[i], tool.Function)
	}
}
