package i18n

import (
	"reflect"
	"testing"
)

func TestFlattenJoinsNestedKeys(t *testing.T) {
	t.Parallel()

	document := Document{
		"menu": map[string]any{
			"file": "File",
			"edit": map[string]any{"undo": "Undo"},
		},
		"greeting": "hi",
	}

	got := Flatten(document, "")
	want := map[string]any{
		"menu.file":      "File",
		"menu.edit.undo": "Undo",
		"greeting":       "hi",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten() = %#v, want %#v", got, want)
	}
}

func TestFlattenAppliesPrefix(t *testing.T) {
	t.Parallel()

	got := Flatten(map[string]any{"a": map[string]any{"b": "x"}}, "root.")
	if _, ok := got["root.a.b"]; !ok || len(got) != 1 {
		t.Fatalf("Flatten() with prefix = %#v, want single key root.a.b", got)
	}
}

func TestFlattenEmptyMapping(t *testing.T) {
	t.Parallel()

	if got := Flatten(Document{}, ""); len(got) != 0 {
		t.Fatalf("Flatten(empty) = %#v, want empty", got)
	}
	if got := Flatten(Document{"empty": map[string]any{}}, ""); len(got) != 0 {
		t.Fatalf("Flatten(nested empty) = %#v, want empty", got)
	}
}

func TestFlattenTreatsArraysAsLeaves(t *testing.T) {
	t.Parallel()

	plural := []any{"one item", map[string]any{"other": "items"}}
	got := Flatten(Document{"items": plural}, "")

	if len(got) != 1 {
		t.Fatalf("Flatten() produced %d keys, want 1: %#v", len(got), got)
	}
	if !reflect.DeepEqual(got["items"], plural) {
		t.Fatalf("Flatten()[items] = %#v, want the array unchanged", got["items"])
	}
}

func TestFlattenKeepsScalarLeaves(t *testing.T) {
	t.Parallel()

	document := Document{
		"count":   float64(3),
		"enabled": true,
		"missing": nil,
		"nested":  Document{"label": "x"},
	}
	got := Flatten(document, "")

	for _, key := range []string{"count", "enabled", "missing", "nested.label"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("Flatten() missing key %q in %#v", key, got)
		}
	}
	if len(got) != 4 {
		t.Fatalf("Flatten() produced %d keys, want 4", len(got))
	}
}

func TestFlattenKeyCountMatchesLeafCount(t *testing.T) {
	t.Parallel()

	documents := []Document{
		{},
		{"a": "1"},
		{"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": "deep"}}}},
		{"a": []any{1, 2, 3}, "b": map[string]any{"c": nil, "d": false}, "e": map[string]any{}},
	}
	for _, document := range documents {
		if got, want := len(Flatten(document, "")), countLeaves(document); got != want {
			t.Fatalf("Flatten(%#v) produced %d keys, want %d", document, got, want)
		}
	}
}

func TestExpandRoundTripsLeafValues(t *testing.T) {
	t.Parallel()

	document := Document{
		"menu": map[string]any{
			"file": "File",
			"edit": map[string]any{"undo": "Undo", "redo": "Redo"},
		},
		"items":    []any{"a", "b"},
		"greeting": "hi",
	}

	flat := Flatten(document, "")
	rebuilt := Expand(flat)
	if !reflect.DeepEqual(Flatten(rebuilt, ""), flat) {
		t.Fatalf("Flatten(Expand(flat)) = %#v, want %#v", Flatten(rebuilt, ""), flat)
	}
	if !reflect.DeepEqual(map[string]any(rebuilt), map[string]any(document)) {
		t.Fatalf("Expand() = %#v, want %#v", rebuilt, document)
	}
}

func TestExpandLongerPathWins(t *testing.T) {
	t.Parallel()

	rebuilt := Expand(map[string]any{"x": "z", "x.y": float64(1)})
	nested, ok := rebuilt["x"].(map[string]any)
	if !ok {
		t.Fatalf("Expand()[x] = %#v, want mapping", rebuilt["x"])
	}
	if nested["y"] != float64(1) {
		t.Fatalf("Expand()[x][y] = %#v, want 1", nested["y"])
	}
}

func countLeaves(document map[string]any) int {
	count := 0
	for _, value := range document {
		if nested, ok := asMapping(value); ok {
			count += countLeaves(nested)
			continue
		}
		count++
	}
	return count
}
