package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEsc(t *testing.T) {
	assert.Equal(t, "plain text", esc("plain text"))
	assert.Equal(t, "a &#60;b&#62; &#38; c", esc("a <b> & c"))
}

func TestGetOpenTagHTML(t *testing.T) {
	tg := NewTag("a")
	tg.Attrs.Set("href", "./Foo_%22Bar%22")
	tg.Attrs.Set("title", `say "hi"`)

	got := getOpenTagHTML(tg)
	assert.Equal(t, `<a href="./Foo_%22Bar%22" title="say &#34;hi&#34;">`, got)
}

func TestGetCloseTagHTML(t *testing.T) {
	assert.Equal(t, "</a>", getCloseTagHTML(NewTag("a")))

	br := NewTag("br")
	br.SelfClosing = true
	assert.Equal(t, "", getCloseTagHTML(br))
}
