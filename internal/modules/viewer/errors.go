package viewer

import "errors"

var ErrPaperNotFound = errors.New("paper not found")
