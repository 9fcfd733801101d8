package apperr

import "errors"

var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrInvalidSlug       = errors.New("invalid slug")
)
