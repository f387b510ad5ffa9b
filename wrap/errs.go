package wrap

import "errors"

var ErrMissingIdentity = errors.New("missing identity field")
