package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RoundTripsSimpleMarkup(t *testing.T) {
	out, err := Normalize(`<p class="a" id="b">Hello</p>`)
	require.NoError(t, err)
	assert.Equal(t, `<p class="a" id="b">Hello</p>`, out)
}

func TestNormalize_SelfClosingVoidElement(t *testing.T) {
	out, err := Normalize(`<br/>`)
	require.NoError(t, err)
	assert.Equal(t, `<br>`, out)
}

func TestNormalize_StripsCommentsAndDoctype(t *testing.T) {
	out, err := Normalize(`<!DOCTYPE html><!-- a comment --><p>Hi</p>`)
	require.NoError(t, err)
	assert.Equal(t, `<p>Hi</p>`, out)
}

func TestNormalize_EscapesAmpersandInText(t *testing.T) {
	out, err := Normalize(`<p>A &amp; B</p>`)
	require.NoError(t, err)
	assert.Equal(t, `<p>A &#38; B</p>`, out)
}

func TestNormalize_IsIdempotent(t *testing.T) {
	first, err := Normalize(`<div><p class="x">One &amp; Two</p></div>`)
	require.NoError(t, err)
	second, err := Normalize(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
