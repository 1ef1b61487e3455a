package i18n

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// GlobFilter ignores key paths matching any of its patterns. "*" stops at
// the key separator, "**" crosses it.
type GlobFilter struct {
	patterns []string
	globs    []glob.Glob
}

func NewGlobFilter(patterns []string) (*GlobFilter, error) {
	filter := &GlobFilter{}
	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		compiled, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		filter.patterns = append(filter.patterns, pattern)
		filter.globs = append(filter.globs, compiled)
	}
	return filter, nil
}

// ParseGlobFilter builds a filter from a comma-separated pattern list.
func ParseGlobFilter(raw string) (*GlobFilter, error) {
	return NewGlobFilter(strings.Split(raw, ","))
}

func (filter *GlobFilter) Ignore(key string) bool {
	if filter == nil {
		return false
	}
	for _, compiled := range filter.globs {
		if compiled.Match(key) {
			return true
		}
	}
	return false
}

func (filter *GlobFilter) Patterns() []string {
	if filter == nil {
		return nil
	}
	result := make([]string, len(filter.patterns))
	copy(result, filter.patterns)
	return result
}
