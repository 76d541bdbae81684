package ini

import (
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	headerPattern = regexp.MustCompile(`^\[(.*)\]$`)
	keyPattern    = regexp.MustCompile(`^([^=;\[\]]+?)\s*=(.*)$`)
)

// Section maps key names to raw values in file order.
type Section = orderedmap.OrderedMap[string, string]

// Document is a parsed INI file. Lines is the source of truth for rewriting;
// the section mapping is derived from it and is never written back.
type Document struct {
	Lines    []string
	sections *orderedmap.OrderedMap[string, *Section]
}

// Parse splits text on "\r\n" or "\n" and derives the section mapping.
//
// A header line opens a new current section, replacing any earlier mapping
// with the same name while keeping its discovery position. Key lines are only
// recorded inside a section, and the last duplicate of a key wins. Lines
// before the first header, comments and unrecognized lines only live in Lines.
func Parse(text string) *Document {
	doc := &Document{
		Lines:    SplitLines(text),
		sections: orderedmap.New[string, *Section](),
	}

	var current *Section
	for _, raw := range doc.Lines {
		line := strings.TrimSpace(raw)
		if name, ok := matchHeader(line); ok {
			current = orderedmap.New[string, string]()
			doc.sections.Set(name, current)
			continue
		}
		if current == nil {
			continue
		}
		if key, value, ok := matchKey(line); ok {
			current.Set(key, value)
		}
	}
	return doc
}

// SplitLines splits on either line ending.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Join re-assembles lines with "\n" separators.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// HasSection reports whether a section with the exact (case-sensitive) name exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections.Get(name)
	return ok
}

// Lookup returns the value of key in section.
func (d *Document) Lookup(section, key string) (string, bool) {
	sec, ok := d.sections.Get(section)
	if !ok {
		return "", false
	}
	return sec.Get(key)
}

// SectionNames lists sections in discovery order.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, d.sections.Len())
	for pair := d.sections.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Keys lists the keys of section in file order, or nil if it does not exist.
func (d *Document) Keys(section string) []string {
	sec, ok := d.sections.Get(section)
	if !ok {
		return nil
	}
	keys := make([]string, 0, sec.Len())
	for pair := sec.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func matchHeader(trimmed string) (string, bool) {
	m := headerPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func matchKey(trimmed string) (string, string, bool) {
	m := keyPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}
