package types

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// rawJSON decodes a jsonb column for fingerprinting so that two rows with
// byte-different but semantically equal payloads hash identically.
func rawJSON(raw datatypes.JSON) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}
