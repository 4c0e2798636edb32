package catelog

import "errors"

var ErrNotFound = errors.New("not found")
var ErrInvalidArgument = errors.New("invalid argument")
