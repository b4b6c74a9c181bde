package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const maxBodyBytes = 1 << 20

type envelope map[string]any

// Read decodes a single JSON object from the request body. Unknown fields are
// tolerated; trailing garbage is not.
func Read(r *http.Request, data any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

func Write(w http.ResponseWriter, status int, data any) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)

	return err
}

func WriteError(w http.ResponseWriter, status int, err error, message string) {
	_ = Write(w, status, envelope{"error": message})
}

func WriteValidationError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, err, err.Error())
}

func WriteBadRequestError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, nil, message)
}

func WriteInternalError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusInternalServerError, err, "internal server error")
}
