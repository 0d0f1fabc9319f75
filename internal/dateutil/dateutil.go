// Package dateutil formats build timestamps from user-friendly layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is given without a layout.
const DefaultDateFormat = "YYYY-MM-DD"

// layoutTokens maps layout tokens to Go reference-time components.
// Longer tokens come first so matching is greedy.
var layoutTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named layouts usable as "auto:<name>".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"datetime": "YYYY-MM-DD[T]HH:mm:ss",
	"compact":  "YYYYMMDD",
	"long":     "MMMM D, YYYY",
}

// ParseLayout converts a layout such as "DD/MM/YYYY" into a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss.
// Text in brackets is copied literally, so "[Built] YYYY" keeps "Built".
// Other characters are kept as they are.
func ParseLayout(layout string) (string, error) {
	if layout == "" {
		return "", fmt.Errorf("%w: layout cannot be empty", ErrInvalidDateFormat)
	}
	if len(layout) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var out strings.Builder
	out.Grow(len(layout) + 8)

	for i := 0; i < len(layout); {
		if layout[i] == '[' {
			end := strings.IndexByte(layout[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			out.WriteString(layout[i+1 : i+1+end])
			i += end + 2
			continue
		}
		if tok, goFmt, ok := matchToken(layout[i:]); ok {
			out.WriteString(goFmt)
			i += len(tok)
			continue
		}
		out.WriteByte(layout[i])
		i++
	}

	return out.String(), nil
}

func matchToken(s string) (token, goFmt string, ok bool) {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.goFmt, true
		}
	}
	return "", "", false
}

// Resolve expands a manifest date setting against now:
//   - "" or "auto" gives now in YYYY-MM-DD
//   - "auto:LAYOUT" formats now with LAYOUT or a named preset
//   - "none" gives an empty string
//   - anything else is returned unchanged
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch {
	case lower == "none":
		return "", nil
	case lower == "" || lower == "auto":
		return format(DefaultDateFormat, now)
	case strings.HasPrefix(lower, "auto:"):
		layout := strings.TrimSpace(value)[len("auto:"):]
		if layout == "" {
			return "", fmt.Errorf("%w: layout cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := Presets[strings.ToLower(layout)]; ok {
			layout = preset
		}
		return format(layout, now)
	case strings.HasPrefix(lower, "auto"):
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:LAYOUT\"", ErrInvalidDateFormat, value)
	default:
		return value, nil
	}
}

func format(layout string, now time.Time) (string, error) {
	goFmt, err := ParseLayout(layout)
	if err != nil {
		return "", err
	}
	return now.Format(goFmt), nil
}
