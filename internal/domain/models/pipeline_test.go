package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFields() []FieldSpec {
	return []FieldSpec{
		{Name: "input_data", Description: "Input data (text)", Direction: FieldInput},
		{Name: "output", Description: "Output result (text)", Direction: FieldOutput},
	}
}

func TestNewPipeline_StartsUnoptimized(t *testing.T) {
	p := NewPipeline("Classify tickets", testFields())

	assert.Equal(t, StateUnoptimized, p.State)
	assert.False(t, p.Optimized())
	assert.Empty(t, p.Demonstrations)
}

func TestPipeline_MarkOptimized(t *testing.T) {
	p := NewPipeline("Classify tickets", testFields())

	demos := []Demonstration{
		{Input: "App crashes", Output: "bug", Bootstrapped: true},
	}
	require.NoError(t, p.MarkOptimized(demos))

	assert.True(t, p.Optimized())
	assert.Equal(t, demos, p.Demonstrations)

	// The transition is one-way and never repeats
	err := p.MarkOptimized(nil)
	assert.Error(t, err)
	assert.True(t, p.Optimized())
	assert.Equal(t, demos, p.Demonstrations)
}

func TestPipeline_FieldLookup(t *testing.T) {
	p := NewPipeline("Classify tickets", testFields())

	in, ok := p.InputField()
	require.True(t, ok)
	assert.Equal(t, "input_data", in.Name)

	out, ok := p.OutputField()
	require.True(t, ok)
	assert.Equal(t, "output", out.Name)
}
