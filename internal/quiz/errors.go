package quiz

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid question bank input")
	ErrInvalidArgument   = errors.New("invalid session size")
	ErrNoSelectionMade   = errors.New("no answer selected")
	ErrInvalidChoice     = errors.New("answer choice out of range")
	ErrAlreadyAnswered   = errors.New("question already answered")
	ErrSourceUnavailable = errors.New("question source unavailable")
)
