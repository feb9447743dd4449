package rentobj

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Backend error kinds. Every client method fails with one of these (or
// with a transport error) so handlers can match with errors.Is.
var (
	ErrObjectNotFound = errors.New("rent object not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrObjectExists   = errors.New("rent object already exists")
	ErrUnprocessable  = errors.New("unprocessable input")
	ErrInternal       = errors.New("backend internal error")
)

// StatusError is an unclassified non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

// classifyStatus maps a backend response to a domain error. A 404 is
// disambiguated by the response body: the backend mentions either
// "Object" or "Record" in its message.
func classifyStatus(code int, body string) error {
	switch code {
	case http.StatusNotFound:
		if strings.Contains(body, "Record") && !strings.Contains(body, "Object") {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, body)
		}
		return fmt.Errorf("%w: %s", ErrObjectNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrObjectExists, body)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternal, body)
	}
	if code < 200 || code > 299 {
		return &StatusError{Code: code, Body: body}
	}
	return nil
}
