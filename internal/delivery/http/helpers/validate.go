package helpers

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements validation.Validatable, runs Validate(). On decode or validation
// failure it writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return Validate(w, dest)
}

// Validate runs dest.Validate() when dest implements validation.Validatable and
// writes a 400 JSON error on failure.
func Validate(w http.ResponseWriter, dest any) bool {
	v, ok := dest.(validation.Validatable)
	if !ok {
		return true
	}
	if err := v.Validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	return true
}
