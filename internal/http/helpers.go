package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"cattery-backend-go/internal/services"
)

func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var serr services.ServiceError
	if errors.As(err, &serr) {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}

// writeFailure answers with the service error's status, or a logged 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if mapServiceError(w, err) {
		return
	}
	log.Printf("%s %s [%s]: %v", r.Method, r.URL.Path, RequestID(r), err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}

const maxJSONBody = 1 << 20

// readBody decodes the JSON body into dst and hands back the raw bytes for
// key presence checks.
func readBody(w http.ResponseWriter, r *http.Request, dst interface{}) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "Payload too large")
			return nil, false
		}
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return nil, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			WriteError(w, http.StatusUnprocessableEntity, typeErr.Field+" has an invalid type")
			return nil, false
		}
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return nil, false
	}
	return raw, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	_, ok := readBody(w, r, dst)
	return ok
}
