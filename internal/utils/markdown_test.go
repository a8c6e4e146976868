package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownHeading(t *testing.T) {
	html := RenderMarkdown("# Hi")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Hi")
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	// 残留的 "alert(1)" 纯文本无害，关键是不能留下任何脚本标签
	html := RenderMarkdown("hello <script>alert(1)</script> world")
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, "hello")
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	html := RenderMarkdown(`<a href="https://example.com" onclick="evil()">link</a>`)
	assert.NotContains(t, html, "onclick")
	assert.NotContains(t, html, "evil")
}

func TestRenderMarkdownStripsJavascriptURL(t *testing.T) {
	html := RenderMarkdown(`[click](javascript:alert(1))`)
	assert.NotContains(t, strings.ToLower(html), "javascript:")
}

func TestRenderMarkdownKeepsStructure(t *testing.T) {
	html := RenderMarkdown("- one\n- two\n\n**bold** and `code`")
	assert.Contains(t, html, "<li>")
	assert.Contains(t, html, "<strong>")
	assert.Contains(t, html, "<code>")
}

func TestSanitizeIdempotent(t *testing.T) {
	// 对已消毒输出再消毒不应有任何变化
	html := RenderMarkdown("# Title\n\nsome *emphasis* and a <script>bad()</script>")
	again := SanitizeHTML(html)
	assert.Equal(t, html, again)
}

func TestRenderMarkdownImageAttributes(t *testing.T) {
	html := RenderMarkdown("![alt](https://example.com/a.png)")
	assert.Contains(t, html, `loading="lazy"`)
	assert.Contains(t, html, `referrerpolicy="no-referrer"`)
	// 不允许出现脚本类属性
	assert.NotContains(t, html, "onerror")
}

func TestExtractText(t *testing.T) {
	text := ExtractText("<h1>Hi</h1> <p>there   world</p>", 0)
	assert.Equal(t, "Hi there world", text)

	short := ExtractText("<p>abcdefgh</p>", 4)
	assert.Equal(t, "abcd", short)
}

// 截断必须落在 rune 边界上，中文摘要不能出现半个字符
func TestExtractTextMultiByteTruncation(t *testing.T) {
	cjk := ExtractText("<p>这是一条很长的中文评论内容</p>", 5)
	assert.Equal(t, "这是一条很", cjk)
	assert.True(t, utf8.ValidString(cjk))

	mixed := ExtractText("<p>好a评b论c</p>", 3)
	assert.Equal(t, "好a评", mixed)
	assert.True(t, utf8.ValidString(mixed))
}
