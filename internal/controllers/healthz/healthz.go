// Package healthz provides the application health endpoint.
package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/httputil"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	r.OPTIONS("", Options)
	r.GET("", Get(db))
}

// Options returns the allowed HTTP methods
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health and, if not healthy, an error
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			httputil.NewError(c, http.StatusInternalServerError, err)
			return
		}

		err = sqlDB.Ping()
		if err != nil {
			httputil.NewError(c, http.StatusInternalServerError, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
