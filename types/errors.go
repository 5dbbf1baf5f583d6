package types

import "errors"

var (
	// ErrUnsupportedFormat is returned when a document extension maps to no extractor.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrUnresolvedPlaceholder is returned when an image placeholder survives
	// annotation. Extraction guarantees one unique token per image, so a
	// leftover token means the text stream and image list went out of sync.
	ErrUnresolvedPlaceholder = errors.New("unresolved image placeholder")

	// ErrQueryEmbedding is returned when the query vector cannot be produced.
	// Retrieval cannot proceed without it, so this surfaces to the caller
	// instead of degrading into an empty result.
	ErrQueryEmbedding = errors.New("failed to embed query")

	// ErrDimensionMismatch is returned when a vector's length does not match
	// the dimensionality the store was configured with. This is a deployment
	// configuration error, not a recoverable runtime condition.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
