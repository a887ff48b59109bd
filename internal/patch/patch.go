// Package patch computes reversible structural patches between the
// tree/object states the editor produces. A patch is an ordered list of
// add/remove/replace operations addressed by JSON pointers. The inverse
// of a patch is derived mechanically from the base state plus the forward
// patch, never from a second diff, so undo is exactly the inverse of what
// was recorded.
package patch

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
)

type Op struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

type Patch []Op

func (p Patch) IsEmpty() bool { return len(p) == 0 }

func (p Patch) JSON() ([]byte, error) {
	if p == nil {
		p = Patch{}
	}
	return json.Marshal(p)
}

func FromJSON(raw []byte) (Patch, error) {
	if len(raw) == 0 {
		return Patch{}, nil
	}
	var p Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return p, nil
}

// Create diffs before and after and returns the forward patch. Inputs are
// normalized through JSON first so maps, slices and struct-backed states
// compare uniformly.
func Create(before, after interface{}) (Patch, error) {
	a, err := toGeneric(before)
	if err != nil {
		return nil, fmt.Errorf("normalize before state: %w", err)
	}
	b, err := toGeneric(after)
	if err != nil {
		return nil, fmt.Errorf("normalize after state: %w", err)
	}
	ops := Patch{}
	diffValue("", a, b, &ops)
	return ops, nil
}

// Inverse derives the patch that transforms the forward patch's result
// back into before. Removed and replaced values are recovered from the
// base state; op order is reversed.
func Inverse(before interface{}, forward Patch) (Patch, error) {
	base, err := toGeneric(before)
	if err != nil {
		return nil, fmt.Errorf("normalize base state: %w", err)
	}
	inverse := make(Patch, 0, len(forward))
	for i := len(forward) - 1; i >= 0; i-- {
		op := forward[i]
		switch op.Op {
		case OpAdd:
			inverse = append(inverse, Op{Op: OpRemove, Path: op.Path})
		case OpRemove:
			old, err := valueAt(base, op.Path)
			if err != nil {
				return nil, fmt.Errorf("invert remove at %q: %w", op.Path, err)
			}
			inverse = append(inverse, Op{Op: OpAdd, Path: op.Path, Value: old})
		case OpReplace:
			old, err := valueAt(base, op.Path)
			if err != nil {
				return nil, fmt.Errorf("invert replace at %q: %w", op.Path, err)
			}
			inverse = append(inverse, Op{Op: OpReplace, Path: op.Path, Value: old})
		default:
			return nil, fmt.Errorf("invert: unknown op %q", op.Op)
		}
	}
	return inverse, nil
}

// ChangesState applies the patch to base and reports whether the result
// actually differs. Guards against non-empty patches that are no-ops on
// the given base.
func ChangesState(base interface{}, p Patch) (bool, error) {
	if p.IsEmpty() {
		return false, nil
	}
	normalized, err := toGeneric(base)
	if err != nil {
		return false, err
	}
	applied, err := Apply(base, p)
	if err != nil {
		return false, err
	}
	return !reflect.DeepEqual(normalized, applied), nil
}

func diffValue(path string, a, b interface{}, ops *Patch) {
	if reflect.DeepEqual(a, b) {
		return
	}
	am, aIsMap := a.(map[string]interface{})
	bm, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		diffMap(path, am, bm, ops)
		return
	}
	as, aIsSlice := a.([]interface{})
	bs, bIsSlice := b.([]interface{})
	if aIsSlice && bIsSlice {
		diffSlice(path, as, bs, ops)
		return
	}
	*ops = append(*ops, Op{Op: OpReplace, Path: path, Value: b})
}

func diffMap(path string, a, b map[string]interface{}, ops *Patch) {
	keys := make([]string, 0, len(a)+len(b))
	seen := map[string]bool{}
	for k := range a {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range b {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		childPath := path + "/" + escapeToken(k)
		av, inA := a[k]
		bv, inB := b[k]
		switch {
		case inA && !inB:
			*ops = append(*ops, Op{Op: OpRemove, Path: childPath})
		case !inA && inB:
			*ops = append(*ops, Op{Op: OpAdd, Path: childPath, Value: bv})
		default:
			diffValue(childPath, av, bv, ops)
		}
	}
}

func diffSlice(path string, a, b []interface{}, ops *Patch) {
	shared := len(a)
	if len(b) < shared {
		shared = len(b)
	}
	for i := 0; i < shared; i++ {
		childPath := fmt.Sprintf("%s/%d", path, i)
		if sameIdentity(a[i], b[i]) {
			diffValue(childPath, a[i], b[i], ops)
			continue
		}
		if !reflect.DeepEqual(a[i], b[i]) {
			*ops = append(*ops, Op{Op: OpReplace, Path: childPath, Value: b[i]})
		}
	}
	// Tail additions ascending, tail removals descending, so the patch
	// applies in order and the reversed inverse applies in order too.
	for i := shared; i < len(b); i++ {
		*ops = append(*ops, Op{Op: OpAdd, Path: fmt.Sprintf("%s/%d", path, i), Value: b[i]})
	}
	for i := len(a) - 1; i >= shared; i-- {
		*ops = append(*ops, Op{Op: OpRemove, Path: fmt.Sprintf("%s/%d", path, i)})
	}
}

// sameIdentity reports whether two slice elements describe the same node,
// so changes inside it diff field-by-field instead of replacing the whole
// element. Layer nodes carry a stable "id".
func sameIdentity(a, b interface{}) bool {
	am, ok := a.(map[string]interface{})
	if !ok {
		return false
	}
	bm, ok := b.(map[string]interface{})
	if !ok {
		return false
	}
	aid, ok := am["id"].(string)
	if !ok || aid == "" {
		return false
	}
	bid, ok := bm["id"].(string)
	if !ok {
		return false
	}
	return aid == bid
}

func toGeneric(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func escapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapeToken(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path %q must start with /", path)
	}
	parts := strings.Split(path[1:], "/")
	for i, p := range parts {
		parts[i] = unescapeToken(p)
	}
	return parts, nil
}
