package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// rawPreviewLen bounds how much of a malformed reply is carried on a decode
// error for diagnostics.
const rawPreviewLen = 200

// decodeStrategy attempts to turn a raw AI reply into a valid JSON document.
// Strategies are tried in order; the first valid result wins.
type decodeStrategy func(raw string) (string, bool)

// Generative services routinely wrap JSON in prose or markdown fences, so a
// direct parse alone is not enough.
var decodeStrategies = []decodeStrategy{
	decodeDirect,
	decodeStripFences,
	decodeBracketSpan,
}

// ExtractJSON extracts a JSON document from free-form AI output. It returns
// ErrDecodeFailed carrying a preview of the raw text when no strategy
// succeeds.
func ExtractJSON(raw string) (string, error) {
	for _, strategy := range decodeStrategies {
		if doc, ok := strategy(raw); ok {
			return doc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrDecodeFailed, previewOf(raw))
}

func previewOf(raw string) string {
	return truncate(strings.TrimSpace(raw), rawPreviewLen)
}

func decodeDirect(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return "", false
	}
	if !gjson.Valid(trimmed) {
		return "", false
	}
	return trimmed, true
}

func decodeStripFences(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.Trim(strings.TrimSpace(trimmed), "`")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return "", false
	}
	return trimmed, true
}

// decodeBracketSpan locates the first balanced {...} or [...] span. String
// literals are honored so braces inside feedback text do not confuse the
// matcher.
func decodeBracketSpan(raw string) (string, bool) {
	start := -1
	var opener, closer byte
	for i := 0; i < len(raw); i++ {
		if raw[i] == '{' || raw[i] == '[' {
			start = i
			opener = raw[i]
			closer = '}'
			if opener == '[' {
				closer = ']'
			}
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				span := raw[start : i+1]
				if gjson.Valid(span) {
					return span, true
				}
				return "", false
			}
		}
	}
	return "", false
}

// requireFields checks that every listed key exists in the JSON document and
// reports a decode failure otherwise.
func requireFields(doc string, keys ...string) error {
	for _, key := range keys {
		if !gjson.Get(doc, key).Exists() {
			return fmt.Errorf("%w: missing field %q", ErrDecodeFailed, key)
		}
	}
	return nil
}

// numberField reads a numeric field, coercing numeric strings. A missing or
// non-numeric value is a decode failure, never silently a boundary value.
func numberField(doc, key string) (float64, error) {
	v := gjson.Get(doc, key)
	switch v.Type {
	case gjson.Number:
		return v.Float(), nil
	case gjson.String:
		trimmed := strings.TrimSpace(v.String())
		if trimmed == "" {
			return 0, fmt.Errorf("%w: empty numeric field %q", ErrDecodeFailed, key)
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q is not numeric", ErrDecodeFailed, key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: field %q is not numeric", ErrDecodeFailed, key)
	}
}

func stringFieldOf(doc, key string) string {
	return gjson.Get(doc, key).String()
}

// stringListField reads an array of strings, dropping empty entries and
// coercing non-string members to their string form.
func stringListField(doc, key string, limit int) []string {
	out := []string{}
	for _, item := range gjson.Get(doc, key).Array() {
		s := strings.TrimSpace(item.String())
		if s == "" {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
