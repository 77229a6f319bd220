package services

import (
	"errors"
	"fmt"
)

type ServiceError struct {
	Status  int
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: 400, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: 401, Message: msg}
}

func ErrUnprocessable(msg string) error {
	return ServiceError{Status: 422, Message: msg}
}

func ErrMisconfigured(msg string) error {
	return ServiceError{Status: 500, Message: msg}
}

// StatusOf returns the HTTP status carried by err, or 0 for plain errors.
func StatusOf(err error) int {
	var serr ServiceError
	if errors.As(err, &serr) {
		return serr.Status
	}
	return 0
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
