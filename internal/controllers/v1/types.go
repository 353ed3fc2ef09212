package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/hearthledger/backend/internal/stats"
	"github.com/hearthledger/backend/internal/types"
)

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-05"` // Year and month in YYYY-MM format
}

type QueryWindow struct {
	N    int       `form:"n"`                                      // Number of periods in the window
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"` // Last day of the window, defaults to today
}

type QueryMember struct {
	Member string `form:"member"` // Restrict to a single group member
}

// parseMonth reads the mandatory month query parameter.
//
// On failure it writes the error response, the caller only needs to return.
func parseMonth(c *gin.Context) (types.Month, bool) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQuery)
		return types.Month{}, false
	}

	if query.Month.IsZero() {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrMonthNotSet)
		return types.Month{}, false
	}

	return types.MonthOf(query.Month), true
}

// parseMember reads the optional member query parameter.
func parseMember(c *gin.Context) (*uuid.UUID, bool) {
	var query QueryMember
	if err := c.Bind(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQuery)
		return nil, false
	}

	if query.Member == "" {
		return nil, true
	}

	id, err := uuid.Parse(query.Member)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidUUID)
		return nil, false
	}

	return &id, true
}

// parseWindow reads the trailing window query parameters, applying the
// given default length when n is not set.
func parseWindow(c *gin.Context, defaultN int) (int, time.Time, bool) {
	var query QueryWindow
	if err := c.Bind(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQuery)
		return 0, time.Time{}, false
	}

	n := query.N
	if n == 0 {
		n = defaultN
	}

	asOf := query.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	return n, asOf, true
}

type SummaryResponse struct {
	Data stats.Summary `json:"data"`
}

type GroupSummary struct {
	stats.Summary
	Members []stats.MemberSummary `json:"members"` // Budget status of each member
}

type GroupSummaryResponse struct {
	Data GroupSummary `json:"data"`
}

type CategoryBreakdownResponse struct {
	Data []stats.CategoryAmount `json:"data"`
}

type TrailingMonthsResponse struct {
	Data []stats.MonthAmount `json:"data"`
}

type TrailingDaysResponse struct {
	Data []stats.DayAmount `json:"data"`
}
