package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
)

const maxJSONBody = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps an error onto its HTTP status and a JSON body. Storage
// errors are logged with their cause but surfaced opaquely.
func writeError(w http.ResponseWriter, err error) {
	status := errs.Status(err)
	message := err.Error()
	if errs.KindOf(err) == errs.KindPersistence {
		slog.Error("Internal error", "error", err)
		message = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"status":  status,
		},
	})
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		return errs.Validation("unable to read request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return errs.Validation("malformed JSON body")
		}
		return errs.Validation("invalid request body: " + err.Error())
	}
	return nil
}
