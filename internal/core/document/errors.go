package document

import "errors"

var (
	// ErrInvalidEdit reports an edit whose offsets fall outside the buffer.
	ErrInvalidEdit = errors.New("document: edit out of buffer bounds")

	// ErrInvalidRange reports a malformed or out-of-bounds tagged range.
	ErrInvalidRange = errors.New("document: invalid range")

	// ErrStaleDelta reports an edit delta applied against an index that has
	// already seen a different buffer revision.
	ErrStaleDelta = errors.New("document: stale edit delta")

	// ErrInvalidTagName reports an empty or whitespace-only tag name.
	ErrInvalidTagName = errors.New("document: invalid tag name")

	// ErrTagExists reports a tag name collision.
	ErrTagExists = errors.New("document: tag name already in use")

	// ErrUnknownTag reports a tag id that does not resolve in the registry.
	ErrUnknownTag = errors.New("document: unknown tag")

	// ErrUnknownRange reports a range id that does not resolve in the index.
	ErrUnknownRange = errors.New("document: unknown range")
)
