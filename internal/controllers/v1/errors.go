package v1

import (
	"errors"
	"net/http"

	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/stats"
)

// status returns the appropriate HTTP status for a domain error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, stats.ErrNotAMember) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}
