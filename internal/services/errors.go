package services

import "errors"

var (
	// ErrNothingToUndo / ErrNothingToRedo: the session cursor is at the
	// boundary of the entity's version history.
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrMissingRequirement: a version's patch references a component or
	// shared style that no longer resolves; applying it would leave
	// dangling references, so the operation is refused.
	ErrMissingRequirement = errors.New("version requirement no longer resolvable")

	// ErrHashMismatch: the draft's current content does not match the
	// hash the version was recorded against; the patch would apply to an
	// unexpected base.
	ErrHashMismatch = errors.New("draft state does not match version hash")

	ErrEntityNotFound      = errors.New("entity not found")
	ErrEntityNotRecordable = errors.New("entity type has no version history")
)
