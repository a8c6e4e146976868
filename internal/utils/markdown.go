package utils

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	// Allow images
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	// Add noopener or noreferrer and follow security best practices
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown 将用户提交的 Markdown 渲染为消毒后的 HTML。
// 持久化的 HTML 绝不能包含可执行脚本，消毒是硬性契约。
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		// 渲染失败时退回到对原文消毒，保证输出仍然无脚本
		return policy.Sanitize(source)
	}
	return enhanceImages(policy.SanitizeBytes(buf.Bytes()))
}

// SanitizeHTML re-applies the comment policy to already rendered HTML.
// Sanitizing sanitized output is a no-op.
func SanitizeHTML(htmlStr string) string {
	return policy.Sanitize(htmlStr)
}

// enhanceImages 为图片增加懒加载与防盗链属性。只添加声明式属性，
// 不引入任何脚本类属性，因此不破坏消毒结果。
func enhanceImages(sanitized []byte) string {
	htmlStr := string(sanitized)
	if !strings.Contains(htmlStr, "<img") {
		return htmlStr
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
	})

	// goquery renders full document tags if missing, we just want the body content
	out, err := doc.Find("body").Html()
	if err != nil || out == "" {
		return htmlStr
	}
	return out
}

// ExtractText 返回 HTML 的纯文本摘要，用于后台评论列表预览。
func ExtractText(htmlStr string, maxLen int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	// 按 rune 截断，避免把中文等多字节字符切成非法 UTF-8
	if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
		return string([]rune(text)[:maxLen])
	}
	return text
}
