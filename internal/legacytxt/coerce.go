package legacytxt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/roach88/roomsim/internal/ir"
)

// Coerce converts a raw value token into a typed value.
//
// Checks apply in order: the literals true/false, an integer, a float, a
// bracketed list (elements separated by whitespace, ',' or ';' and coerced
// recursively), a quoted string (quotes removed). Anything else is kept
// as text; that fallback is not an error.
//
// An integer outside the int64 range is kept as text with its digits
// intact rather than rounded to a float.
func Coerce(token string) ir.Value {
	token = strings.TrimSpace(token)

	switch token {
	case "true":
		return ir.Bool(true)
	case "false":
		return ir.Bool(false)
	}
	n, err := strconv.ParseInt(token, 10, 64)
	if err == nil {
		return ir.Int(n)
	}
	if errors.Is(err, strconv.ErrRange) {
		return ir.Text(token)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return ir.Float(f)
	}
	if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
		elems := splitElements(token[1 : len(token)-1])
		list := make(ir.List, len(elems))
		for i, elem := range elems {
			list[i] = Coerce(elem)
		}
		return list
	}
	if unquoted, ok := unquote(token); ok {
		return ir.Text(unquoted)
	}
	return ir.Text(token)
}

// splitElements splits list contents on separators outside nested
// brackets and quotes.
func splitElements(s string) []string {
	var (
		elems []string
		cur   strings.Builder
		depth int
		quote rune
	)
	flush := func() {
		if cur.Len() > 0 {
			elems = append(elems, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			depth--
			cur.WriteRune(r)
		case depth == 0 && isSeparator(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return elems
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ';'
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '\'' && first != '"') {
		return "", false
	}
	return s[1 : len(s)-1], true
}
