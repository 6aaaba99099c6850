package stanseg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ExtraOptions is an ordered set of segmenter properties, rendered as
// key1=value1,key2=value2 with JSON-encoded values. Strings are escaped to
// ASCII and floats always show a fraction or exponent (2.0, not 2). The zero
// value is empty and ready to use.
type ExtraOptions struct {
	keys   []string
	values map[string]string
}

// Set stores value under key. Values must be strings, booleans, integers or
// floats. Replacing a key keeps its original position.
func (o *ExtraOptions) Set(key string, value any) error {
	if key == "" {
		return fmt.Errorf("stanseg: empty option key")
	}
	if strings.ContainsAny(key, "=,") {
		return fmt.Errorf("stanseg: option key %q contains '=' or ','", key)
	}

	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
	default:
		return fmt.Errorf("stanseg: option %q has unsupported type %T", key, value)
	}

	encoded, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("stanseg: option %q: %w", key, err)
	}

	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = encoded
	return nil
}

// Len returns the number of options.
func (o ExtraOptions) Len() int {
	return len(o.keys)
}

// Keys returns option keys in insertion order.
func (o ExtraOptions) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the JSON-encoded value stored under key.
func (o ExtraOptions) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Clone returns an independent copy.
func (o ExtraOptions) Clone() ExtraOptions {
	if len(o.keys) == 0 {
		return ExtraOptions{}
	}
	c := ExtraOptions{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]string, len(o.values)),
	}
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}

// Merge copies every option of other into o, overriding keys o already has.
func (o *ExtraOptions) Merge(other ExtraOptions) {
	for _, k := range other.keys {
		if o.values == nil {
			o.values = make(map[string]string)
		}
		if _, ok := o.values[k]; !ok {
			o.keys = append(o.keys, k)
		}
		o.values[k] = other.values[k]
	}
}

// String renders the options as the argument of -options.
func (o ExtraOptions) String() string {
	parts := make([]string, len(o.keys))
	for i, k := range o.keys {
		parts[i] = k + "=" + o.values[k]
	}
	return strings.Join(parts, ",")
}

// ParseExtraOptions builds options from key=value pairs. Values spelled as
// booleans or numbers are stored as such; anything else is a string.
func ParseExtraOptions(pairs []string) (ExtraOptions, error) {
	var o ExtraOptions
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return ExtraOptions{}, fmt.Errorf("stanseg: option %q is not key=value", pair)
		}
		if err := o.Set(strings.TrimSpace(key), inferValue(raw)); err != nil {
			return ExtraOptions{}, err
		}
	}
	return o, nil
}

func inferValue(raw string) any {
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return raw
}

// encodeValue renders v as a JSON scalar with ASCII-only strings (\uXXXX
// escapes, surrogate pairs above the BMP) and floats that keep a fractional
// part or exponent.
func encodeValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return quoteASCII(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	default:
		return fmt.Sprint(x), nil
	}
}

func quoteASCII(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || (r > 0x7e && r <= 0xffff):
				fmt.Fprintf(&b, `\u%04x`, r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatFloat matches Python's float repr: shortest round-trip digits, fixed
// notation with at least one fractional digit for exponents in [-4, 16),
// scientific notation with a two-digit exponent otherwise.
func formatFloat(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported value %v", f)
	}

	sci := strconv.FormatFloat(f, 'e', -1, bitSize)
	mant, expStr, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return "", err
	}
	if exp < -4 || exp >= 16 {
		sign := "+"
		if exp < 0 {
			sign, exp = "-", -exp
		}
		return fmt.Sprintf("%se%s%02d", mant, sign, exp), nil
	}

	fixed := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed, nil
}
