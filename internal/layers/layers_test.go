package layers

import (
	"reflect"
	"testing"
)

func TestDecodeEmptyPayload(t *testing.T) {
	tree, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tree) != 0 {
		t.Fatalf("expected empty tree, got %#v", tree)
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	if _, err := Decode([]byte(`{"id":"a"}`)); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}

func TestNormalizeStripsTransientKeysAtEveryDepth(t *testing.T) {
	tree := []interface{}{
		map[string]interface{}{
			"id":       "a",
			"selected": true,
			"children": []interface{}{
				map[string]interface{}{
					"id":        "b",
					"hovered":   true,
					"open":      false,
					"_cache":    map[string]interface{}{"w": 100},
					"_computed": "xyz",
					"text":      "hello",
				},
			},
		},
	}

	got := Normalize(tree)
	want := []interface{}{
		map[string]interface{}{
			"id": "a",
			"children": []interface{}{
				map[string]interface{}{"id": "b", "text": "hello"},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %#v, want %#v", got, want)
	}

	// Input must survive untouched.
	node := tree[0].(map[string]interface{})
	if _, ok := node["selected"]; !ok {
		t.Fatal("Normalize mutated its input")
	}
}

func TestNormalizeNil(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("expected empty tree, got %#v", got)
	}
}

func TestExtractRequirementsSymmetricDifference(t *testing.T) {
	before := []interface{}{
		map[string]interface{}{"id": "n1", "componentId": "C1"},
		map[string]interface{}{"id": "n2", "componentId": "C3"},
		map[string]interface{}{"id": "n3", "styleId": "S1"},
	}
	after := []interface{}{
		map[string]interface{}{"id": "n1", "componentId": "C2"},
		map[string]interface{}{"id": "n2", "componentId": "C3"},
		map[string]interface{}{"id": "n3", "styleId": "S1", "styleIds": []interface{}{"S2", "S3"}},
	}

	got := ExtractRequirements(before, after)

	// C3 and S1 appear on both sides, so they are not requirements.
	wantComponents := []string{"C1", "C2"}
	wantStyles := []string{"S2", "S3"}
	if !reflect.DeepEqual(got.ComponentIDs, wantComponents) {
		t.Fatalf("ComponentIDs = %v, want %v", got.ComponentIDs, wantComponents)
	}
	if !reflect.DeepEqual(got.StyleIDs, wantStyles) {
		t.Fatalf("StyleIDs = %v, want %v", got.StyleIDs, wantStyles)
	}
}

func TestExtractRequirementsNestedRefs(t *testing.T) {
	before := []interface{}{}
	after := []interface{}{
		map[string]interface{}{
			"id": "root",
			"children": []interface{}{
				map[string]interface{}{"id": "leaf", "componentId": "COMP-9"},
			},
		},
	}
	got := ExtractRequirements(before, after)
	if !reflect.DeepEqual(got.ComponentIDs, []string{"COMP-9"}) {
		t.Fatalf("nested componentId not collected: %v", got.ComponentIDs)
	}
}

func TestExtractRequirementsNoChanges(t *testing.T) {
	tree := []interface{}{map[string]interface{}{"id": "a", "componentId": "C1"}}
	got := ExtractRequirements(tree, tree)
	if !got.IsEmpty() {
		t.Fatalf("identical trees produced requirements: %#v", got)
	}
}

func TestMergeDeduplicates(t *testing.T) {
	a := Requirements{ComponentIDs: []string{"C1", "C2"}, StyleIDs: []string{"S1"}}
	b := Requirements{ComponentIDs: []string{"C2", "C3"}, StyleIDs: []string{"S1", "S2"}}
	got := Merge(a, b)
	if !reflect.DeepEqual(got.ComponentIDs, []string{"C1", "C2", "C3"}) {
		t.Fatalf("ComponentIDs = %v", got.ComponentIDs)
	}
	if !reflect.DeepEqual(got.StyleIDs, []string{"S1", "S2"}) {
		t.Fatalf("StyleIDs = %v", got.StyleIDs)
	}
}
