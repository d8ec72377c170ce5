package legacytxt

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/roomsim/internal/ir"
)

// CommentPrefix starts a full-line comment.
const CommentPrefix = "%"

// indexedKey matches top-level keys that are merged into ordered lists,
// e.g. "source(2)".
var indexedKey = regexp.MustCompile(`^(source|receiver)\((\d+)\)$`)

// indexedLists maps an indexed key prefix to the list field it is merged
// into. The order is the order lists are appended to the result.
var indexedLists = []struct{ prefix, field string }{
	{"source", "sources"},
	{"receiver", "receivers"},
}

// Parse reads legacy "key = value" lines into a nested mapping.
//
// Rules:
//   - blank lines and lines starting with '%' are skipped
//   - a line that leaves a '[' open (outside quotes and before any comment)
//     starts a list literal continued on the following lines up to the
//     first one holding ']'; ';' inside it separates rows and is read as
//     whitespace
//   - text after the first ';' outside brackets and quotes is a comment
//   - dotted field paths create nested mappings
//   - top-level "source(n)" and "receiver(n)" entries are merged into
//     "sources" and "receivers", ordered by n; "source(n) = []" is an
//     entry with no fields
//
// "sources" and "receivers" are only added when the input has at least one
// indexed entry. A file without sensors therefore leaves both unset, and
// RoomSetup gives each its default sensor, where a bare empty list would
// leave the setup with none.
func Parse(lines []string) (*ir.Nested, error) {
	out := ir.NewNested()
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		if opensList(line) {
			joined, end, err := joinList(lines, i)
			if err != nil {
				return nil, err
			}
			line, i = joined, end
		}

		field, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ParseError{
				Line:    lineNo,
				Code:    ErrCodeMissingAssignment,
				Message: fmt.Sprintf("expected \"field = value\", got %q", line),
			}
		}
		field = strings.TrimSpace(field)
		value = stripComment(strings.TrimSpace(value))

		if err := insert(out, field, Coerce(value)); err != nil {
			err.Line = lineNo
			return nil, err
		}
	}

	mergeIndexed(out)
	return out, nil
}

// ParseReader reads all lines from r and parses them.
func ParseReader(r io.Reader) (*ir.Nested, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read legacy config: %w", err)
	}
	return Parse(lines)
}

// ParseFile opens and parses a legacy configuration file.
func ParseFile(path string) (*ir.Nested, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open legacy config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// joinList concatenates a multi-line list literal starting at lines[start].
// It returns the joined logical line and the index of its last line.
func joinList(lines []string, start int) (string, int, error) {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(strings.TrimSpace(lines[start]), ";", " "))
	for j := start + 1; j < len(lines); j++ {
		next := strings.TrimSpace(lines[j])
		if next == "" || strings.HasPrefix(next, CommentPrefix) {
			continue
		}
		b.WriteByte(' ')
		if strings.Contains(next, "]") {
			// The closing line may carry a trailing comment; leave its ';'
			// for stripComment.
			b.WriteString(next)
			return b.String(), j, nil
		}
		b.WriteString(strings.ReplaceAll(next, ";", " "))
	}
	return "", 0, &ParseError{
		Line:    start + 1,
		Code:    ErrCodeMalformedList,
		Message: "list literal is never closed",
	}
}

// opensList reports whether line leaves a '[' unclosed. Brackets inside
// quotes and after a comment ';' do not count.
func opensList(line string) bool {
	depth := 0
	var quote rune
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			return false
		}
	}
	return depth > 0
}

// stripComment drops everything from the first ';' that is neither inside
// brackets nor inside quotes.
func stripComment(value string) string {
	depth := 0
	var quote rune
	for i, r := range value {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			return strings.TrimSpace(value[:i])
		}
	}
	return value
}

// insert stores v under a dotted path, creating intermediate mappings.
// A later assignment to the same path replaces the earlier value.
func insert(root *ir.Nested, path string, v ir.Value) *ParseError {
	if path == "" {
		return &ParseError{Code: ErrCodeEmptyPath, Message: "field path is empty"}
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return &ParseError{
				Code:    ErrCodeEmptyPath,
				Message: fmt.Sprintf("field path %q has an empty segment", path),
			}
		}
	}

	cur := root
	for i, seg := range segments[:len(segments)-1] {
		seg = strings.TrimSpace(seg)
		existing, ok := cur.Get(seg)
		if !ok {
			child := ir.NewNested()
			cur.Set(seg, child)
			cur = child
			continue
		}
		child, isNested := existing.(*ir.Nested)
		if !isNested {
			return &ParseError{
				Code: ErrCodePathConflict,
				Message: fmt.Sprintf("%q already holds a %s value",
					strings.Join(segments[:i+1], "."), ir.TypeName(existing)),
			}
		}
		cur = child
	}
	cur.Set(strings.TrimSpace(segments[len(segments)-1]), v)
	return nil
}

// mergeIndexed moves "source(n)"/"receiver(n)" keys into ordered lists.
// Lists are only added when at least one indexed key exists.
func mergeIndexed(root *ir.Nested) {
	type indexed struct {
		n   int
		key string
	}
	groups := make(map[string][]indexed)
	for _, key := range root.Keys() {
		m := indexedKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		groups[m[1]] = append(groups[m[1]], indexed{n: n, key: key})
	}

	for _, l := range indexedLists {
		entries := groups[l.prefix]
		if len(entries) == 0 {
			continue
		}
		slices.SortStableFunc(entries, func(a, b indexed) int { return cmp.Compare(a.n, b.n) })
		list := make(ir.List, 0, len(entries))
		for _, e := range entries {
			v, _ := root.Get(e.key)
			if l, ok := v.(ir.List); ok && len(l) == 0 {
				v = ir.NewNested()
			}
			list = append(list, v)
			root.Delete(e.key)
		}
		root.Set(l.field, list)
	}
}
