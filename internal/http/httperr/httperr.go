// Package httperr maps domain errors to HTTP status codes.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/castor/internal/scenario"
	"github.com/MrJamesThe3rd/castor/internal/timeline"
)

// Status returns the status code for err.
func Status(err error) int {
	var (
		verr     *scenario.ValidationError
		maxBytes *http.MaxBytesError
	)

	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, scenario.ErrMalformed):
		return http.StatusBadRequest
	case errors.As(err, &verr),
		errors.Is(err, scenario.ErrIncompatibleVersion),
		errors.Is(err, scenario.ErrMissingData),
		errors.Is(err, timeline.ErrSellerLotNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, scenario.ErrNotFound),
		errors.Is(err, scenario.ErrUnknownParticipant):
		return http.StatusNotFound
	case errors.Is(err, scenario.ErrLotLimit):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write replies with the status code for err. Internal errors are logged
// and their message is not sent to the client.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}
