package value

import "errors"

var (
	ErrUnregisteredType = errors.New("unregistered value type")
	ErrBadValue         = errors.New("bad value")
)
