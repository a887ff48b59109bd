package patch

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe builds a short human summary of a patch for the version
// history UI. Best effort only; nothing downstream depends on it.
func Describe(p Patch) string {
	if p.IsEmpty() {
		return "No changes"
	}
	if len(p) == 1 {
		return describeOp(p[0])
	}
	adds, removes, replaces := 0, 0, 0
	for _, op := range p {
		switch op.Op {
		case OpAdd:
			adds++
		case OpRemove:
			removes++
		case OpReplace:
			replaces++
		}
	}
	switch {
	case adds == len(p):
		return fmt.Sprintf("Added %d items", adds)
	case removes == len(p):
		return fmt.Sprintf("Removed %d items", removes)
	case replaces == len(p):
		return fmt.Sprintf("Changed %d properties", replaces)
	default:
		return fmt.Sprintf("Changed %d properties", len(p))
	}
}

func describeOp(op Op) string {
	subject := pathSubject(op.Path)
	switch op.Op {
	case OpAdd:
		return "Added " + subject
	case OpRemove:
		return "Removed " + subject
	case OpReplace:
		return "Changed " + subject
	default:
		return "Edited " + subject
	}
}

func pathSubject(path string) string {
	tokens, err := splitPath(path)
	if err != nil || len(tokens) == 0 {
		return "document"
	}
	leaf := tokens[len(tokens)-1]
	if _, err := strconv.Atoi(leaf); err == nil {
		// An indexed element is a node in an ordered list.
		return "layer"
	}
	return strings.ReplaceAll(leaf, "_", " ")
}
