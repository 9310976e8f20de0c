package segment

import "errors"

var (
	// ErrPlaceholderCollision indicates the input already contains the
	// reserved runes placeholders are built from.
	ErrPlaceholderCollision = errors.New("input contains reserved placeholder runes")

	// ErrUnrestoredPlaceholder indicates a placeholder survived restoration.
	ErrUnrestoredPlaceholder = errors.New("placeholder survived restoration")

	// ErrInvalidDatePattern indicates the configured date pattern does not compile
	ErrInvalidDatePattern = errors.New("invalid date pattern")
)
