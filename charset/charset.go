// Package charset maps charset names, as understood by the JVM, to text
// encoders and decoders.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is the charset used when none is configured.
const Default = "UTF-8"

// Lookup returns the encoding registered under name. WHATWG labels are
// tried first, then IANA names, so both "gbk" and "GB18030" resolve.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, Default) || strings.EqualFold(name, "UTF8") {
		return unicode.UTF8, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("charset: unsupported encoding %q", name)
	}
	return enc, nil
}

// Encode converts UTF-8 text to the named charset.
func Encode(name, text string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("charset: encoding to %s: %w", name, err)
	}
	return out, nil
}

// Decode converts bytes in the named charset to UTF-8 text.
func Decode(name string, data []byte) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("charset: decoding from %s: %w", name, err)
	}
	return string(out), nil
}
