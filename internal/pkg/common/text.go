package common

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	spacePattern      = regexp.MustCompile(`\s+`)
	sentencePattern   = regexp.MustCompile(`\. ([A-Z])`)
	stepNumberPattern = regexp.MustCompile(`(\d+)\.\s*`)
	multiBreakPattern = regexp.MustCompile(`\n{3,}`)
)

// StripHTML 移除 HTML 標籤並解碼實體，回傳純文字
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// 解析失敗時退回正則移除標籤
		return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
	}
	return strings.TrimSpace(doc.Text())
}

// FormatSummary 清理食譜簡介：移除 HTML、正規化空白、補上句子換行
func FormatSummary(text string) string {
	clean := StripHTML(text)
	clean = spacePattern.ReplaceAllString(clean, " ")
	clean = sentencePattern.ReplaceAllString(clean, ".\n\n$1")
	return tidyBreaks(clean)
}

// FormatInstructions 清理烹調步驟：移除 HTML、讓步驟編號各自成行
func FormatInstructions(text string) string {
	clean := StripHTML(text)
	clean = spacePattern.ReplaceAllString(clean, " ")
	clean = stepNumberPattern.ReplaceAllString(clean, "\n$1. ")
	return tidyBreaks(clean)
}

// tidyBreaks 收斂多餘換行與行首尾空白
func tidyBreaks(text string) string {
	text = multiBreakPattern.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
