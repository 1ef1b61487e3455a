package i18n

import (
	"sort"
	"strings"
)

// KeySeparator joins the keys traversed from the document root to a leaf.
const KeySeparator = "."

// Document is a parsed translation file: a nested mapping whose leaves are
// strings, numbers, booleans, null or arrays.
type Document map[string]any

// Flatten maps every leaf of document to its dot-joined key path, each path
// starting with prefix. Only mappings are descended into; arrays are leaves.
func Flatten(document map[string]any, prefix string) map[string]any {
	result := make(map[string]any, len(document))
	flattenInto(result, document, prefix)
	return result
}

func flattenInto(result map[string]any, document map[string]any, prefix string) {
	for key, value := range document {
		if nested, ok := asMapping(value); ok {
			flattenInto(result, nested, prefix+key+KeySeparator)
			continue
		}
		result[prefix+key] = value
	}
}

// KeySet returns the flattened key paths of document.
func KeySet(document map[string]any) map[string]struct{} {
	flat := Flatten(document, "")
	keys := make(map[string]struct{}, len(flat))
	for key := range flat {
		keys[key] = struct{}{}
	}
	return keys
}

// Expand rebuilds a nested document from flattened key paths. When one path
// is a prefix of another ("a" and "a.b") the longer path wins.
func Expand(flat map[string]any) Document {
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	root := Document{}
	for _, path := range paths {
		segments := strings.Split(path, KeySeparator)
		current := map[string]any(root)
		for _, segment := range segments[:len(segments)-1] {
			next, ok := current[segment].(map[string]any)
			if !ok {
				next = map[string]any{}
				current[segment] = next
			}
			current = next
		}
		current[segments[len(segments)-1]] = flat[path]
	}
	return root
}

func asMapping(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case Document:
		return typed, true
	default:
		return nil, false
	}
}
