package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes exactly one JSON object from the body into dest, rejecting unknown
// fields, then runs dest's Validate when it implements Validator. On failure it writes the error
// response and returns false; callers should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	return decode(w, r, dest, false)
}

// DecodeOptional is DecodeAndValidate for endpoints whose body may be omitted. An empty body
// leaves dest at its zero value.
func DecodeOptional(w http.ResponseWriter, r *http.Request, dest any) bool {
	return decode(w, r, dest, true)
}

func decode(w http.ResponseWriter, r *http.Request, dest any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF) && optional:
			return validate(w, dest)
		case errors.Is(err, io.EOF):
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body is required")
		case errors.As(err, &tooLarge):
			WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "request body too large")
		default:
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		}
		return false
	}
	if dec.More() {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body must be a single JSON object")
		return false
	}
	return validate(w, dest)
}

func validate(w http.ResponseWriter, dest any) bool {
	v, ok := dest.(Validator)
	if !ok {
		return true
	}
	if errs := v.Validate(); len(errs) > 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
		return false
	}
	return true
}
