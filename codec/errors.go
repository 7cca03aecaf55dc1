package codec

import "github.com/pkg/errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding options are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInputTooLarge is returned when the input exceeds MaxInputSize
	ErrInputTooLarge = errors.New("input exceeds configured size limit")
)
