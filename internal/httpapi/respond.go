package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DoyleJ11/cricket-auction/internal/engine"
)

var (
	ErrNotFound   = errors.New("auction not found")
	ErrBadRequest = errors.New("bad request")
)

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError maps err onto a status code by its engine kind.
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := engine.Kind(err)
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		status = http.StatusBadRequest
	case kind == engine.KindRuleViolation:
		status = http.StatusUnprocessableEntity
	case kind == engine.KindIneligible:
		status = http.StatusConflict
	case kind == engine.KindTerminal:
		status = http.StatusGone
	case errors.Is(err, engine.ErrUnsupportedCommand):
		status = http.StatusBadRequest
	}

	body := map[string]string{"error": err.Error()}
	if kind != engine.KindUnknown {
		body["kind"] = string(kind)
	}
	RespondJSON(w, status, body)
}

// DecodeJSON reads and decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}
