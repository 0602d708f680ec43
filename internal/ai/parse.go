package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrMalformedResponse = errors.New("malformed AI response")
	ErrMissingFields     = errors.New("AI response is missing fields")
)

// fenceRegex matches markdown code fences around a JSON answer.
var fenceRegex = regexp.MustCompile("```(?:json)?\\n?|\\n?```")

// StripFences removes markdown code fences and surrounding whitespace.
func StripFences(raw string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(raw, ""))
}

// ParseJSON decodes a model answer into dst after stripping code fences.
// Every key in expected must be present in the object, null counts as present.
func ParseJSON(raw string, expected []string, dst any) error {
	cleaned := StripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var missing []string
	for _, key := range expected {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// quoteRegex matches one wrapping quotation mark at either end.
var quoteRegex = regexp.MustCompile(`^\s*["'“”‘’]|["'“”‘’]\s*$`)

// CollapseSpaces replaces runs of whitespace with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripQuotes removes wrapping quotation marks.
func StripQuotes(s string) string {
	return strings.TrimSpace(quoteRegex.ReplaceAllString(s, ""))
}

// CapitalizeFirst upper-cases a leading lowercase letter.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Clean applies all post-processing steps to model output.
func Clean(s string) string {
	return CapitalizeFirst(StripQuotes(CollapseSpaces(s)))
}

// ClampRunes shortens s to at most max runes, cutting at a word boundary
// when one exists in the second half.
func ClampRunes(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:-")
}
