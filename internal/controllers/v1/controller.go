// Package v1 is the HTTP surface of the backend.
//
// Handlers parse and validate the request, call into the domain packages and
// translate their sentinel errors to HTTP statuses. No business logic lives
// here.
package v1

import (
	"github.com/hearthledger/backend/internal/recurrence"
	"github.com/hearthledger/backend/internal/stats"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	DB     *gorm.DB
	Engine *recurrence.Engine
	Stats  *stats.Service
}
