package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	ee := Newf("boom").Build()

	assert.Equal(t, ComponentUnknown, ee.Component)
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.Equal(t, "boom", ee.Error())
	assert.False(t, ee.Timestamp.IsZero())
}

func TestBuild_WithContext(t *testing.T) {
	t.Parallel()

	ee := Newf("list samples failed").
		Component("sample-service").
		Category(CategoryNetwork).
		Context("url", "/samples").
		Context("page", 2).
		Build()

	ctx := ee.GetContext()
	assert.Equal(t, "/samples", ctx["url"])
	assert.Equal(t, 2, ctx["page"])
	assert.Equal(t, CategoryNetwork, ee.Category)
	assert.Equal(t, "sample-service", ee.Component)

	// The returned map is a copy, mutating it must not leak back
	ctx["url"] = "changed"
	assert.Equal(t, "/samples", ee.GetContext()["url"])
}

func TestUnwrap_PreservesChain(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("connection refused")
	ee := New(fmt.Errorf("request failed: %w", inner)).Category(CategoryNetwork).Build()

	require.ErrorIs(t, ee, inner)
}

func TestIs_MatchesByCategory(t *testing.T) {
	t.Parallel()

	a := Newf("a").Category(CategoryNotFound).Build()
	b := Newf("b").Category(CategoryNotFound).Build()
	c := Newf("c").Category(CategoryTimeout).Build()

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
}

type captureReporter struct {
	seen []*EnhancedError
}

func (c *captureReporter) Report(ee *EnhancedError) { c.seen = append(c.seen, ee) }

func TestSetReporter(t *testing.T) {
	rep := &captureReporter{}
	SetReporter(rep)
	defer SetReporter(nil)

	Newf("observed").Category(CategoryAPIResponse).Build()

	require.Len(t, rep.seen, 1)
	assert.Equal(t, CategoryAPIResponse, rep.seen[0].Category)
}
