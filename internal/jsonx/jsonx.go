// Package jsonx parses JSON objects out of language-model responses,
// which routinely arrive wrapped in prose, markdown fences or thinking
// tags.
package jsonx

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoObject = errors.New("jsonx: no JSON object found in input")

// ParseObject decodes a JSON object from raw into v using two phases:
// a strict parse of the trimmed input, then a salvage parse of the
// first balanced {...} substring.
func ParseObject(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	candidate, err := FirstObject(trimmed)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(candidate), v)
}

// FirstObject returns the first balanced top-level {...} substring.
// Braces inside string literals are skipped so payload text cannot
// shift the boundary.
func FirstObject(s string) (string, error) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("jsonx: unbalanced JSON object in input")
}
