package volume

import "fmt"

// Kind classifies a volume-level failure the way cmd/cmd reports it.
type Kind int

const (
	// VolumeAccessError means the image could not be opened, sized, or mapped.
	VolumeAccessError Kind = iota
	// MalformedBootSector means the boot signature is missing or a boot
	// sector field is out of range. The fields are not checked against the
	// image length.
	MalformedBootSector
)

func (k Kind) String() string {
	switch k {
	case VolumeAccessError:
		return "VolumeAccessError"
	case MalformedBootSector:
		return "MalformedBootSector"
	default:
		return "UnknownError"
	}
}

// Error wraps an underlying cause with a Kind so callers can branch with
// errors.As without parsing message text.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Msg: msg, Err: cause}
}
