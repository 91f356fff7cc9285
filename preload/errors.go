package preload

import "errors"

var (
	// ErrNoReferences is returned when Preload is called without any image references.
	ErrNoReferences = errors.New("incorrect number of arguments: at least one image reference is required")
	// ErrGeneratorPanic wraps a panic recovered from a Generator.
	ErrGeneratorPanic = errors.New("image generator panicked")
	// ErrCallbackPanic wraps a panic recovered from a Finished or Error callback.
	ErrCallbackPanic = errors.New("callback panicked")
)
