package submission

import (
	"net/url"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape HTML-escapes the five characters that can change markup: & < > " '.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// headerSafe folds line breaks so a field can never start a new mail header.
func headerSafe(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
}

// encodeComponent percent-encodes s for a mailto: query value. Spaces become
// %20 rather than '+', which mail clients would show literally.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func mailtoURL(address, subject, body string) string {
	return "mailto:" + address + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}
