package avatar

import "errors"

var (
	// ErrNoImage indicates that no image bytes were provided.
	ErrNoImage = errors.New("avatar: no image selected")
	// ErrTooLarge indicates the input exceeded the configured byte limit.
	ErrTooLarge = errors.New("avatar: image exceeds size limit")
	// ErrUnsupportedImage indicates the bytes are not a decodable image of an
	// accepted type.
	ErrUnsupportedImage = errors.New("avatar: unsupported image type")
)
