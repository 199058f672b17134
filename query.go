package qstate

import (
	"strings"
)

// nullLiteral is how the null marker is spelled in a query string.
const nullLiteral = "null"

// ParseQuery reads an application/x-www-form-urlencoded query string
// (a leading '?' is ignored). '+' decodes to a space, malformed percent
// escapes are kept literally, a key without '=' gets the empty string and
// the literal value "null" becomes the null marker. For repeated keys the
// last value wins and the first position is kept.
func ParseQuery(q string) *RawParams {
	q = strings.TrimPrefix(q, "?")
	out := NewRawParams()
	for seg := range strings.SplitSeq(q, "&") {
		if seg == "" {
			continue
		}
		name, value, _ := strings.Cut(seg, "=")
		k := unescape(name)
		v := unescape(value)
		if v == nullLiteral {
			out.Set(k, NullRaw())
			continue
		}
		out.Set(k, StringRaw(v))
	}
	return out
}

// FormatQuery writes raw as a query string without the leading '?'.
// Undefined values are omitted and null is written as "null".
func FormatQuery(raw *RawParams) string {
	b := &strings.Builder{}
	for k, v := range raw.All() {
		var s string
		switch v.Kind {
		case RawUndefined:
			continue
		case RawNull:
			s = nullLiteral
		default:
			s = v.Value
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		escapeTo(b, k)
		b.WriteByte('=')
		escapeTo(b, s)
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// escapeTo percent-encodes s with the form-urlencoded byte set: ASCII
// alphanumerics and "*-._" stay, space becomes '+'.
func escapeTo(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case isFormSafe(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
}

func isFormSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '*', c == '-', c == '.', c == '_':
		return true
	}
	return false
}

func unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			buf = append(buf, ' ')
		case c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			buf = append(buf, c)
		}
	}
	return strings.ToValidUTF8(string(buf), "\uFFFD")
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
