package models

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

const tagDelimiter = ","

// Tags is an ordered set of trimmed, non-empty, case-sensitive tags. The
// delimited string form exists only in the database column.
type Tags []string

// NewTags normalizes raw input: entries are trimmed, empties dropped,
// duplicates collapsed and the result sorted. A delimiter inside an entry
// splits it into separate tags.
func NewTags(raw []string) Tags {
	seen := make(map[string]struct{}, len(raw))
	out := make(Tags, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, tagDelimiter) {
			tag := strings.TrimSpace(part)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// Contains reports whether tag is in the set.
func (t Tags) Contains(tag string) bool {
	i := sort.SearchStrings(t, tag)
	return i < len(t) && t[i] == tag
}

func (t Tags) Value() (driver.Value, error) {
	return strings.Join(NewTags(t), tagDelimiter), nil
}

func (t *Tags) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
	*t = NewTags([]string{raw})
	return nil
}
