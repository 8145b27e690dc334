package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/field"
)

// Wire grammar tokens.
const (
	separator    = "~"
	escapedSep   = "~~"
	unknownToken = "unknown"
	minPrefix    = "≥"
	maxPrefix    = "≤"
	trueToken    = "1"
	falseToken   = "0"
)

// ErrInvalidFilterEncoding signals a filter decode request for a type that cannot be filtered.
var ErrInvalidFilterEncoding = fmt.Errorf("%w: invalid filter encoding", domain.ErrLogic)

var intToken = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// Decode parses the raw wire value of a filter for a field of the given type.
// Malformed tokens are dropped silently; only an unfilterable type is an error.
func Decode(ft field.Type, raw string) (Value, error) {
	switch ft {
	case field.Integer:
		return DecodeInt(raw), nil
	case field.String:
		return DecodeString(raw), nil
	case field.Boolean:
		return DecodeBool(raw), nil
	case field.Text, field.URL:
		return nil, fmt.Errorf("%w: type %s is not filterable", ErrInvalidFilterEncoding, ft)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidFilterEncoding, ft)
	}
}

// DecodeInt parses "≥min~≤max~unknown" tokens in any order.
// A bare prefix without digits clears the bound, later tokens win.
func DecodeInt(raw string) IntRange {
	var lo, hi *int64
	includeUnknown := false

	for _, part := range strings.Split(raw, separator) {
		switch {
		case part == unknownToken:
			includeUnknown = true
		case strings.HasPrefix(part, minPrefix):
			if n, ok := parseBound(strings.TrimPrefix(part, minPrefix)); ok {
				lo = n
			}
		case strings.HasPrefix(part, maxPrefix):
			if n, ok := parseBound(strings.TrimPrefix(part, maxPrefix)); ok {
				hi = n
			}
		}
	}

	return NewIntRange(lo, hi, includeUnknown)
}

// parseBound accepts "" (no bound) or a plain non-negative integer up to MaxIntValue.
func parseBound(s string) (*int64, bool) {
	if s == "" {
		return nil, true
	}
	if !intToken.MatchString(s) {
		return nil, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n > MaxIntValue {
		return nil, false
	}
	return &n, true
}

// DecodeBool parses "1" or "0" plus an optional "unknown" token.
func DecodeBool(raw string) BoolChoice {
	var value *bool
	includeUnknown := false

	for _, part := range strings.Split(raw, separator) {
		switch part {
		case unknownToken:
			includeUnknown = true
		case trueToken:
			v := true
			value = &v
		case falseToken:
			v := false
			value = &v
		}
	}

	return NewBoolChoice(value, includeUnknown)
}

// DecodeString parses a list of "~"-separated values where a literal "~" is written "~~".
// Only a trailing "<option>~" token is an option, so "a~unknown" is two values.
func DecodeString(raw string) StringSet {
	includeUnknown := false

	if rest, option, ok := cutOptionSuffix(raw); ok {
		raw = rest
		includeUnknown = option == unknownToken
	}

	parts := splitOnLoneSeparator(raw)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		values = append(values, strings.ReplaceAll(p, escapedSep, separator))
	}

	return NewStringSet(values, includeUnknown)
}

// cutOptionSuffix splits "<values><option>~" where option is the run of
// non-separator characters right before the final separator.
func cutOptionSuffix(raw string) (rest, option string, ok bool) {
	n := len(raw)
	if n < 2 || raw[n-1] != '~' || raw[n-2] == '~' {
		return raw, "", false
	}
	body := raw[:n-1]
	start := strings.LastIndexByte(body, '~') + 1
	return body[:start], body[start:], true
}

// splitOnLoneSeparator splits on every "~" neither preceded nor followed by another "~".
func splitOnLoneSeparator(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			continue
		}
		if i > 0 && s[i-1] == '~' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '~' {
			continue
		}
		parts = append(parts, s[start:i])
		start = i + 1
	}
	return append(parts, s[start:])
}

// Encode renders a filter back into its wire form.
func Encode(v Value) string {
	switch f := v.(type) {
	case IntRange:
		return encodeInt(f)
	case StringSet:
		return encodeString(f)
	case BoolChoice:
		return encodeBool(f)
	default:
		panic(fmt.Sprintf("filter: unhandled value type %T", v))
	}
}

func encodeInt(r IntRange) string {
	var tokens []string
	if r.min != nil {
		tokens = append(tokens, minPrefix+strconv.FormatInt(*r.min, 10))
	}
	if r.max != nil {
		tokens = append(tokens, maxPrefix+strconv.FormatInt(*r.max, 10))
	}
	if r.includeUnknown {
		tokens = append(tokens, unknownToken)
	}
	return strings.Join(tokens, separator)
}

func encodeString(s StringSet) string {
	escaped := make([]string, len(s.values))
	for i, v := range s.values {
		escaped[i] = strings.ReplaceAll(v, separator, escapedSep)
	}
	out := strings.Join(escaped, separator)
	if s.includeUnknown {
		if out != "" {
			out += separator
		}
		out += unknownToken + separator
	}
	return out
}

func encodeBool(b BoolChoice) string {
	if b.value == nil {
		return ""
	}
	out := falseToken
	if *b.value {
		out = trueToken
	}
	if b.includeUnknown {
		out += separator + unknownToken
	}
	return out
}
