package ini

import "strings"

// KeyValue is one requested assignment.
type KeyValue struct {
	Key   string
	Value string
}

// Change describes one rewritten line. Line is 1-based. Old and New are the
// whole lines; OldValue and NewValue are the trimmed values.
type Change struct {
	Line     int
	Key      string
	Old      string
	New      string
	OldValue string
	NewValue string
}

// Modified reports whether the value changed. Whitespace around the key, the
// separator or the value does not count, so "Display = 1" to "Display=1" is
// not a modification even though the line bytes differ.
func (c Change) Modified() bool {
	return c.OldValue != c.NewValue
}

// PatchResult is the outcome of Patch.
type PatchResult struct {
	Lines        []string
	Changes      []Change
	SectionFound bool
}

// Unapplied returns the requested keys that no line was rewritten for, in request order.
func (r PatchResult) Unapplied(updates []KeyValue) []string {
	applied := make(map[string]struct{}, len(r.Changes))
	for _, c := range r.Changes {
		applied[c.Key] = struct{}{}
	}
	var missing []string
	for _, kv := range updates {
		if _, ok := applied[kv.Key]; !ok {
			missing = append(missing, kv.Key)
		}
	}
	return missing
}

// Patch rewrites key=value lines inside section. Only the first occurrence of
// each requested key is rewritten, as "key=value"; later duplicates and every
// other line are copied through unchanged. The input slices are not modified.
func Patch(lines []string, section string, updates []KeyValue) PatchResult {
	wanted := make(map[string]string, len(updates))
	for _, kv := range updates {
		if _, dup := wanted[kv.Key]; !dup {
			wanted[kv.Key] = kv.Value
		}
	}
	applied := make(map[string]struct{}, len(wanted))

	result := PatchResult{Lines: make([]string, len(lines))}
	inSection := false
	for i, raw := range lines {
		result.Lines[i] = raw
		line := strings.TrimSpace(raw)

		if name, ok := matchHeader(line); ok {
			inSection = name == section
			if inSection {
				result.SectionFound = true
			}
			continue
		}
		if !inSection {
			continue
		}

		key, current, ok := matchKey(line)
		if !ok {
			continue
		}
		value, requested := wanted[key]
		if !requested {
			continue
		}
		if _, done := applied[key]; done {
			continue
		}
		applied[key] = struct{}{}
		replacement := key + "=" + value
		result.Lines[i] = replacement
		result.Changes = append(result.Changes, Change{
			Line:     i + 1,
			Key:      key,
			Old:      raw,
			New:      replacement,
			OldValue: strings.TrimSpace(current),
			NewValue: value,
		})
	}
	return result
}
