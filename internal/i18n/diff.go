package i18n

import "sort"

// Result holds the key paths present in one locale and absent from the other.
type Result struct {
	LanguageA string   `json:"languageA"`
	LanguageB string   `json:"languageB"`
	KeysA     int      `json:"keysA"`
	KeysB     int      `json:"keysB"`
	OnlyInA   []string `json:"onlyInA"`
	OnlyInB   []string `json:"onlyInB"`
}

// KeyFilter drops key paths from a comparison.
type KeyFilter interface {
	Ignore(key string) bool
}

// Diff compares the flattened key paths of two documents. Paths matched by
// filter are left out of both sides; filter may be nil. A path that is a leaf
// in one document and a mapping in the other shows up as two unrelated keys.
func Diff(a Document, b Document, filter KeyFilter) Result {
	keysA := KeySet(a)
	keysB := KeySet(b)

	return Result{
		KeysA:   len(keysA),
		KeysB:   len(keysB),
		OnlyInA: missingKeys(keysA, keysB, filter),
		OnlyInB: missingKeys(keysB, keysA, filter),
	}
}

// Compare loads both locale files and diffs them, labelling each side as
// SideLabels does.
func Compare(pathA string, pathB string, filter KeyFilter) (Result, error) {
	documentA, err := LoadDocument(pathA)
	if err != nil {
		return Result{}, err
	}
	documentB, err := LoadDocument(pathB)
	if err != nil {
		return Result{}, err
	}

	result := Diff(documentA, documentB, filter)
	result.LanguageA, result.LanguageB = SideLabels(pathA, pathB)
	return result, nil
}

func (result Result) HasDifferences() bool {
	return len(result.OnlyInA) > 0 || len(result.OnlyInB) > 0
}

func missingKeys(source map[string]struct{}, target map[string]struct{}, filter KeyFilter) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; ok {
			continue
		}
		if filter != nil && filter.Ignore(key) {
			continue
		}
		missing = append(missing, key)
	}
	sort.Strings(missing)
	return missing
}
