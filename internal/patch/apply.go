package patch

import (
	"fmt"
	"strconv"
)

// Apply transforms base by the given patch and returns the result. Base is
// never mutated; the result is a fresh generic value.
func Apply(base interface{}, p Patch) (interface{}, error) {
	current, err := toGeneric(base)
	if err != nil {
		return nil, fmt.Errorf("normalize base state: %w", err)
	}
	for i, op := range p {
		current, err = applyOp(current, op)
		if err != nil {
			return nil, fmt.Errorf("apply op %d (%s %s): %w", i, op.Op, op.Path, err)
		}
	}
	return current, nil
}

func applyOp(root interface{}, op Op) (interface{}, error) {
	tokens, err := splitPath(op.Path)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		// Whole-document operation.
		switch op.Op {
		case OpReplace, OpAdd:
			return op.Value, nil
		case OpRemove:
			return nil, nil
		default:
			return nil, fmt.Errorf("unknown op %q", op.Op)
		}
	}
	return applyAt(root, tokens, op)
}

func applyAt(node interface{}, tokens []string, op Op) (interface{}, error) {
	token := tokens[0]
	last := len(tokens) == 1

	switch typed := node.(type) {
	case map[string]interface{}:
		if !last {
			child, ok := typed[token]
			if !ok {
				return nil, fmt.Errorf("missing key %q", token)
			}
			replaced, err := applyAt(child, tokens[1:], op)
			if err != nil {
				return nil, err
			}
			out := copyMap(typed)
			out[token] = replaced
			return out, nil
		}
		out := copyMap(typed)
		switch op.Op {
		case OpAdd:
			out[token] = op.Value
		case OpReplace:
			if _, ok := out[token]; !ok {
				return nil, fmt.Errorf("replace of missing key %q", token)
			}
			out[token] = op.Value
		case OpRemove:
			if _, ok := out[token]; !ok {
				return nil, fmt.Errorf("remove of missing key %q", token)
			}
			delete(out, token)
		default:
			return nil, fmt.Errorf("unknown op %q", op.Op)
		}
		return out, nil

	case []interface{}:
		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("non-numeric index %q", token)
		}
		if !last {
			if idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(typed))
			}
			replaced, err := applyAt(typed[idx], tokens[1:], op)
			if err != nil {
				return nil, err
			}
			out := copySlice(typed)
			out[idx] = replaced
			return out, nil
		}
		switch op.Op {
		case OpAdd:
			if idx < 0 || idx > len(typed) {
				return nil, fmt.Errorf("insert index %d out of range (len %d)", idx, len(typed))
			}
			out := make([]interface{}, 0, len(typed)+1)
			out = append(out, typed[:idx]...)
			out = append(out, op.Value)
			out = append(out, typed[idx:]...)
			return out, nil
		case OpReplace:
			if idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(typed))
			}
			out := copySlice(typed)
			out[idx] = op.Value
			return out, nil
		case OpRemove:
			if idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(typed))
			}
			out := make([]interface{}, 0, len(typed)-1)
			out = append(out, typed[:idx]...)
			out = append(out, typed[idx+1:]...)
			return out, nil
		default:
			return nil, fmt.Errorf("unknown op %q", op.Op)
		}

	default:
		return nil, fmt.Errorf("cannot descend into %T at %q", node, token)
	}
}

func valueAt(root interface{}, path string) (interface{}, error) {
	tokens, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	current := root
	for _, token := range tokens {
		switch typed := current.(type) {
		case map[string]interface{}:
			child, ok := typed[token]
			if !ok {
				return nil, fmt.Errorf("missing key %q", token)
			}
			current = child
		case []interface{}:
			idx, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("non-numeric index %q", token)
			}
			if idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(typed))
			}
			current = typed[idx]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %q", current, token)
		}
	}
	return current, nil
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySlice(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	copy(out, in)
	return out
}
