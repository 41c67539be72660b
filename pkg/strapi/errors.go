package strapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorClass groups failures for logs and metrics. It does not change how a
// failure is handled.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport failures.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents bodies that could not be normalized or decoded.
	ErrorClassDecode ErrorClass = "decode"
)

// Error is returned for any non-2xx CMS response.
type Error struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("strapi request failed: %s - %s", e.Status, e.Body)
}

// Class returns the error class derived from the status code.
func (e *Error) Class() ErrorClass {
	if e.StatusCode >= 500 {
		return ErrorClassServer
	}
	return ErrorClassClient
}

// IsNotFound reports whether err is a 404 from the CMS.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// classifyError maps an error returned by the client to an ErrorClass.
func classifyError(err error) ErrorClass {
	var se *Error
	if errors.As(err, &se) {
		return se.Class()
	}
	var de *decodeError
	if errors.As(err, &de) {
		return ErrorClassDecode
	}
	return ErrorClassNetwork
}

// decodeError wraps normalization and JSON failures on a 2xx body.
type decodeError struct {
	endpoint string
	err      error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.endpoint, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }
