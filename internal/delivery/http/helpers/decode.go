package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// MaxJSONBodyBytes bounds JSON request bodies.
const MaxJSONBodyBytes = 64 << 10

// DecodeJSON decodes the request body into dest, rejecting unknown fields and
// bodies over MaxJSONBodyBytes. On failure it writes a 400 (or 413) error naming
// the offending field when there is one, and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dest)
	if err == nil {
		return true
	}

	var (
		typeErr  *json.UnmarshalTypeError
		syntax   *json.SyntaxError
		tooLarge *http.MaxBytesError
	)
	apiErr := &APIError{Code: ErrCodeBadRequest}
	status := http.StatusBadRequest
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		apiErr.Message = "request body is too large"
	case errors.As(err, &typeErr):
		apiErr.Message = typeErr.Field + " must be a " + typeErr.Type.String()
		apiErr.Fields = []string{typeErr.Field}
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		apiErr.Message = "malformed JSON body"
	case errors.Is(err, io.EOF):
		apiErr.Message = "request body is empty"
	default:
		if field, ok := unknownField(err); ok {
			apiErr.Message = "unknown field " + field
			apiErr.Fields = []string{field}
		} else {
			apiErr.Message = err.Error()
		}
	}
	WriteJSON(w, status, APIResponse{Error: apiErr})
	return false
}

// unknownField extracts the name from encoding/json's `json: unknown field "x"` error.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	name, uerr := strconv.Unquote(strings.TrimPrefix(msg, prefix))
	if uerr != nil {
		return "", false
	}
	return name, true
}
