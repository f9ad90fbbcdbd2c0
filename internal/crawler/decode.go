package crawler

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// decodeBody converts raw response bytes to text.
//
// The ladder is:
//  1. If the Content-Type header declares a charset, decode with it.
//  2. Otherwise, if the bytes are valid UTF-8, use them as-is.
//  3. Fall back to Latin-1, which maps every byte to a rune and
//     therefore never fails.
//
// Design decision: We never return an error here. A demo should always
// show something for a text response, even when a tarpit serves
// deliberately broken encodings.
func decodeBody(raw []byte, contentType string) string {
	if len(raw) == 0 {
		return ""
	}

	if name := charsetFromContentType(contentType); name != "" {
		if enc, err := htmlindex.Get(name); err == nil && enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(raw); err == nil {
				return string(decoded)
			}
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	// Latin-1 decoding cannot fail; every byte is a valid code point.
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// charsetFromContentType extracts the charset parameter from a
// Content-Type header value. Returns empty string when absent or
// when the header is malformed.
func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return strings.ToLower(params["charset"])
}
