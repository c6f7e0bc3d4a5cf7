// Package sanitize содержит чистые детерминированные преобразования входных данных,
// которые применяются до валидации и сохранения.
package sanitize

import (
	"regexp"
	"strings"
)

// maxPasses ограничивает число повторных проходов StripHTML.
// Повтор нужен для вложенных конструкций вроде "javajavascript:script:".
const maxPasses = 8

var (
	scriptBlock     = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</\s*script\s*>`)
	styleBlock      = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</\s*style\s*>`)
	anyTag          = regexp.MustCompile(`(?s)</?[a-zA-Z!][^>]*>`)
	trailingTag     = regexp.MustCompile(`(?s)</?[a-zA-Z!][^>]*$`)
	eventHandler    = regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]*)`)
	dangerousScheme = regexp.MustCompile(`(?i)(javascript|vbscript)\s*:|data\s*:\s*text/html`)
)

// StripHTML removes markup, script/style bodies, inline event handlers and
// script URL schemes from free text. An unclosed tag at the end of the input is
// dropped as well. The result is trimmed. StripHTML(StripHTML(s)) == StripHTML(s).
func StripHTML(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	for i := 0; i < maxPasses; i++ {
		next := scriptBlock.ReplaceAllString(s, "")
		next = styleBlock.ReplaceAllString(next, "")
		next = anyTag.ReplaceAllString(next, "")
		next = trailingTag.ReplaceAllString(next, "")
		next = eventHandler.ReplaceAllString(next, "")
		next = dangerousScheme.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == s {
			break
		}
		s = next
	}

	return s
}

// Trim убирает пробельные символы по краям строки
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Upper приводит код (валюта, статус) к каноническому верхнему регистру
func Upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Lower приводит строку к нижнему регистру
func Lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email normalizes an email address for comparison and storage
func Email(s string) string {
	return Lower(s)
}
