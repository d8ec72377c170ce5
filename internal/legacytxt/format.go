package legacytxt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/roomsim/internal/ir"
)

// Format renders a nested mapping as legacy text that Parse reads back into
// an equal mapping, less its null fields.
//
// Lists of mappings under "sources" and "receivers" are written as indexed
// "source(n)" / "receiver(n)" entries. Null fields are omitted; an entry
// left with nothing to write is kept as "source(n) = []" so the list keeps
// its length.
func Format(cfg *ir.Nested) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the legacy text form of cfg to w.
func Write(w io.Writer, cfg *ir.Nested) error {
	var lines []string
	if err := formatNested(&lines, "", cfg); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatNested(lines *[]string, prefix string, n *ir.Nested) error {
	for key, v := range n.All() {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if prefix == "" {
			if idx, ok := indexPrefix(key); ok {
				if list, isList := v.(ir.List); isList && allNested(list) {
					for i, elem := range list {
						entry := fmt.Sprintf("%s(%d)", idx, i+1)
						before := len(*lines)
						if err := formatNested(lines, entry, elem.(*ir.Nested)); err != nil {
							return err
						}
						if len(*lines) == before {
							*lines = append(*lines, entry+" = []")
						}
					}
					continue
				}
			}
		}

		switch val := v.(type) {
		case ir.Null:
			continue
		case *ir.Nested:
			if err := formatNested(lines, path, val); err != nil {
				return err
			}
			continue
		}

		s, err := formatValue(v)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		*lines = append(*lines, path+" = "+s)
	}
	return nil
}

func formatValue(v ir.Value) (string, error) {
	switch val := v.(type) {
	case ir.Bool:
		return strconv.FormatBool(bool(val)), nil
	case ir.Int:
		return strconv.FormatInt(int64(val), 10), nil
	case ir.Float:
		return ir.FormatFloat(float64(val)), nil
	case ir.Text:
		return formatText(string(val))
	case ir.Bytes:
		return formatText(string(val))
	case ir.List:
		parts := make([]string, len(val))
		for i, elem := range val {
			s, err := formatValue(elem)
			if err != nil {
				return "", fmt.Errorf("[%d]: %w", i, err)
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, " ") + "]", nil
	}
	return "", fmt.Errorf("%s values have no legacy text form", ir.TypeName(v))
}

// quotedChars force quoting: whitespace splits list elements, the rest
// are quote, separator or bracket characters.
const quotedChars = " \t'\",;[]"

// formatText writes s bare when it holds no quotedChars and reads back as
// the same text, and quoted otherwise.
func formatText(s string) (string, error) {
	if strings.ContainsAny(s, "\n\r") {
		return "", fmt.Errorf("text %q spans lines", s)
	}
	if s != "" && !strings.ContainsAny(s, quotedChars) {
		if got, ok := Coerce(s).(ir.Text); ok && string(got) == s {
			return s, nil
		}
	}
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'", nil
	case !strings.Contains(s, `"`):
		return `"` + s + `"`, nil
	}
	return "", fmt.Errorf("text %q holds both quote characters", s)
}

func indexPrefix(key string) (string, bool) {
	for _, l := range indexedLists {
		if l.field == key {
			return l.prefix, true
		}
	}
	return "", false
}

func allNested(list ir.List) bool {
	if len(list) == 0 {
		return false
	}
	for _, elem := range list {
		if _, ok := elem.(*ir.Nested); !ok {
			return false
		}
	}
	return true
}
