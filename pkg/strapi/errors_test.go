package strapi

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Endpoint:   "headers",
		StatusCode: 403,
		Status:     "Forbidden",
		Body:       `{"error":{"status":403}}`,
	}

	want := `strapi request failed: Forbidden - {"error":{"status":403}}`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"not found", &Error{StatusCode: 404}, ErrorClassClient},
		{"unauthorized wrapped", fmt.Errorf("fetch: %w", &Error{StatusCode: 401}), ErrorClassClient},
		{"server error", &Error{StatusCode: 502}, ErrorClassServer},
		{"decode", &decodeError{endpoint: "heroes", err: io.ErrUnexpectedEOF}, ErrorClassDecode},
		{"network", io.EOF, ErrorClassNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrap: %w", &Error{StatusCode: 404})) {
		t.Error("IsNotFound() = false for wrapped 404")
	}
	if IsNotFound(&Error{StatusCode: 500}) {
		t.Error("IsNotFound() = true for 500")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("IsNotFound() = true for plain error")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	err := &decodeError{endpoint: "articles", err: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("decodeError should unwrap to its cause")
	}
}
