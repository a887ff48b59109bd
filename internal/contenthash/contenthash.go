// Package contenthash computes deterministic digests of entity content.
// The digest is a pure function of semantic content: map keys are
// serialized in sorted order, array order is preserved, and bookkeeping
// fields never enter the input.
package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type absent struct{}

// Absent is the sentinel for a field that is not present at all, as
// opposed to one that is present with a null value. The two hash to
// different digests.
var Absent = absent{}

const (
	nullToken   = `null`
	absentToken = `"__absent__"`
)

// Hash returns "sha256:<hex>" over the canonical JSON form of v.
func Hash(v interface{}) string {
	b, err := canonicalJSON(v)
	if err != nil {
		// Unserializable values still need a stable digest so change
		// detection degrades to "always changed" instead of panicking.
		b = []byte(fmt.Sprintf("!unhashable:%v", err))
	}
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// HashMap hashes a field map after dropping the given keys.
func HashMap(fields map[string]interface{}, exclude ...string) string {
	if fields == nil {
		return Hash(nil)
	}
	trimmed := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		trimmed[k] = v
	}
	for _, k := range exclude {
		delete(trimmed, k)
	}
	return Hash(trimmed)
}

func canonicalJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return []byte(nullToken), nil
	}
	if _, ok := v.(absent); ok {
		return []byte(absentToken), nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// Round-trip through interface{} so structs and maps collapse to the
	// same representation; encoding/json emits map keys sorted at every
	// nesting level, which gives us the canonical ordering.
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}
