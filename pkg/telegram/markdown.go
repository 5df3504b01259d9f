package telegram

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday"
)

// Telegram's HTML parse mode accepts only a handful of inline tags. Model
// replies arrive as markdown, so they are rendered to HTML first and then
// reduced to the supported subset.
var (
	tagRe     = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	allowedRe = regexp.MustCompile(`^</?(b|strong|i|em|u|s|del|code|pre|a)(\s[^>]*)?/?>$`)
)

func ToTelegramHTML(markdown string) string {
	html := string(blackfriday.MarkdownCommon([]byte(markdown)))

	replacer := strings.NewReplacer(
		"<p>", "", "</p>", "\n",
		"<ul>", "", "</ul>", "",
		"<ol>", "", "</ol>", "",
		"<li>", "• ", "</li>", "\n",
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"<hr>", "\n", "<hr/>", "\n", "<hr />", "\n",
		"<blockquote>", "", "</blockquote>", "",
	)
	html = replacer.Replace(html)

	// Headings become bold lines.
	for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		html = strings.ReplaceAll(html, "<"+h+">", "<b>")
		html = strings.ReplaceAll(html, "</"+h+">", "</b>\n")
	}

	html = tagRe.ReplaceAllStringFunc(html, func(tag string) string {
		if allowedRe.MatchString(tag) {
			return tag
		}
		return ""
	})

	return strings.TrimSpace(html)
}
