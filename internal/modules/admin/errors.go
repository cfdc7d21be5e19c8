package admin

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidEmail           = errors.New("invalid email")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrNotAdmin               = errors.New("email is not registered as an admin")
	ErrAdminCheckFailed       = errors.New("admin check failed")
	ErrDefaultExamTypeMissing = errors.New("default exam type not found")
	ErrInvalidReference       = errors.New("referenced branch, semester or exam type does not exist")
	ErrPaperNotFound          = errors.New("paper not found")
)

// ValidationError lists the request fields that failed validation and the
// rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
