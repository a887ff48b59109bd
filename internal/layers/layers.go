// Package layers works with the editor's layer trees: decoding the stored
// jsonb payload, stripping UI-only annotations before diffing, and
// extracting references to dependent entities (components, shared styles).
package layers

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Keys the canvas writes onto nodes for its own bookkeeping. They never
// carry document content, so they are stripped before any diff; an edit
// that only touches these produces an empty patch.
var transientKeys = map[string]bool{
	"selected":  true,
	"hovered":   true,
	"open":      true,
	"_cache":    true,
	"_computed": true,
}

// Decode parses a stored layer tree payload into its generic form. An
// empty payload decodes to an empty tree.
func Decode(raw []byte) ([]interface{}, error) {
	if len(raw) == 0 {
		return []interface{}{}, nil
	}
	var tree []interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode layer tree: %w", err)
	}
	return tree, nil
}

// Normalize returns a copy of the tree with transient UI keys removed at
// every depth. The input is not mutated.
func Normalize(tree []interface{}) []interface{} {
	if tree == nil {
		return []interface{}{}
	}
	out := make([]interface{}, len(tree))
	for i, node := range tree {
		out[i] = normalizeValue(node)
	}
	return out
}

// NormalizeAny strips transient UI keys from any state value. Object
// states (shared styles, component wrappers) go through here; layer
// arrays through Normalize.
func NormalizeAny(v interface{}) interface{} {
	return normalizeValue(v)
}

func normalizeValue(v interface{}) interface{} {
	switch typed := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, child := range typed {
			if transientKeys[k] {
				continue
			}
			out[k] = normalizeValue(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, child := range typed {
			out[i] = normalizeValue(child)
		}
		return out
	default:
		return v
	}
}

// Requirements lists the dependent entity ids a patch needs to be
// replayable: components and shared styles referenced on exactly one side
// of a change.
type Requirements struct {
	ComponentIDs []string `json:"component_ids"`
	StyleIDs     []string `json:"style_ids"`
}

func (r Requirements) IsEmpty() bool {
	return len(r.ComponentIDs) == 0 && len(r.StyleIDs) == 0
}

// Merge unions two requirement sets, deduplicating ids.
func Merge(a, b Requirements) Requirements {
	return Requirements{
		ComponentIDs: mergeIDs(a.ComponentIDs, b.ComponentIDs),
		StyleIDs:     mergeIDs(a.StyleIDs, b.StyleIDs),
	}
}

// ExtractRequirements walks both trees and returns the symmetric
// difference of their component and style references. Unchanged
// references are deliberately excluded: only ids that appear on exactly
// one side are needed to replay the forward or inverse patch.
func ExtractRequirements(before, after []interface{}) Requirements {
	beforeRefs := collectRefs(before)
	afterRefs := collectRefs(after)
	return Requirements{
		ComponentIDs: symmetricDifference(beforeRefs.components, afterRefs.components),
		StyleIDs:     symmetricDifference(beforeRefs.styles, afterRefs.styles),
	}
}

type refSet struct {
	components map[string]bool
	styles     map[string]bool
}

func collectRefs(tree []interface{}) refSet {
	refs := refSet{components: map[string]bool{}, styles: map[string]bool{}}
	for _, node := range tree {
		walkRefs(node, &refs)
	}
	return refs
}

func walkRefs(v interface{}, refs *refSet) {
	switch typed := v.(type) {
	case map[string]interface{}:
		if id, ok := typed["componentId"].(string); ok && id != "" {
			refs.components[id] = true
		}
		if id, ok := typed["styleId"].(string); ok && id != "" {
			refs.styles[id] = true
		}
		if ids, ok := typed["styleIds"].([]interface{}); ok {
			for _, raw := range ids {
				if id, ok := raw.(string); ok && id != "" {
					refs.styles[id] = true
				}
			}
		}
		for _, child := range typed {
			walkRefs(child, refs)
		}
	case []interface{}:
		for _, child := range typed {
			walkRefs(child, refs)
		}
	}
}

func symmetricDifference(a, b map[string]bool) []string {
	out := []string{}
	for id := range a {
		if !b[id] {
			out = append(out, id)
		}
	}
	for id := range b {
		if !a[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func mergeIDs(lists ...[]string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, list := range lists {
		for _, id := range list {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
