package reviews

import "errors"

var ErrNotFound = errors.New("not found")
