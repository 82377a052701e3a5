package models

import "net/http"

// RequestError is a client-side problem with a request body. Status is the
// HTTP code it maps to.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func badRequest(msg string) error {
	return &RequestError{Status: http.StatusBadRequest, Message: msg}
}

func tooLarge(msg string) error {
	return &RequestError{Status: http.StatusRequestEntityTooLarge, Message: msg}
}
