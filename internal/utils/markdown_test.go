package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("some **bold** text"))
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown(`hello <script>alert("x")</script> world`))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
}

func TestRenderMarkdownLinksOpenSafely(t *testing.T) {
	out := string(RenderMarkdown("[site](https://example.com)"))
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noreferrer")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "plain words", SanitizeText("plain words"))
	assert.Equal(t, "nice pin", SanitizeText(`<b>nice</b> <a href="x">pin</a>`))
	assert.NotContains(t, SanitizeText(`<script>alert(1)</script>ok`), "script")
}
