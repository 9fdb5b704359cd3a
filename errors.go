package ngres

import "fmt"

// Error is the domain error for any invalid or unsupported asset
// definition: missing fields, bad dimensions, out-of-range animation
// frames, unsupported encodings, address-space overflow. Any Error
// aborts the whole compilation; no partial output is valid.
type Error struct {
	Asset string
	Msg   string
}

func (e *Error) Error() string {
	if e.Asset == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Asset, e.Msg)
}

func errorf(asset, format string, args ...interface{}) *Error {
	return &Error{Asset: asset, Msg: fmt.Sprintf(format, args...)}
}
