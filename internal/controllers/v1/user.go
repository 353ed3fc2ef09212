package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/stats"
	"github.com/ryanuber/go-glob"
)

// RegisterUserRoutes registers the routes for user statistics with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id/summary", httputil.OptionsGet)
	r.GET("/:id/summary", co.GetUserSummary)

	r.OPTIONS("/:id/categories", httputil.OptionsGet)
	r.GET("/:id/categories", co.GetUserCategories)

	r.OPTIONS("/:id/trailing/months", httputil.OptionsGet)
	r.GET("/:id/trailing/months", co.GetUserTrailingMonths)

	r.OPTIONS("/:id/trailing/days", httputil.OptionsGet)
	r.GET("/:id/trailing/days", co.GetUserTrailingDays)
}

// GetUserSummary returns the budget status of a user for a month.
func (co Controller) GetUserSummary(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	summary, err := co.Stats.UserSummary(id, month)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: summary})
}

// GetUserCategories returns the per-category spending of a user for a
// month. The filter query parameter restricts the categories by glob
// match on the label.
func (co Controller) GetUserCategories(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	var user models.User
	err = co.DB.First(&user, id).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	breakdown, err := co.Stats.CategoryBreakdown(stats.UserScope(id), month, nil)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, CategoryBreakdownResponse{Data: filterLabels(c, breakdown)})
}

// filterLabels applies the filter query parameter as a glob match on the
// category labels. An unset filter keeps everything.
func filterLabels(c *gin.Context, breakdown []stats.CategoryAmount) []stats.CategoryAmount {
	pattern := c.Query("filter")
	if pattern == "" {
		return breakdown
	}

	matched := make([]stats.CategoryAmount, 0, len(breakdown))
	for _, entry := range breakdown {
		if glob.Glob(pattern, entry.Label) {
			matched = append(matched, entry)
		}
	}

	return matched
}

// GetUserTrailingMonths returns monthly totals for the trailing window
// ending at asOf. n defaults to 12 months.
func (co Controller) GetUserTrailingMonths(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	n, asOf, ok := parseWindow(c, stats.DefaultTrailingMonths)
	if !ok {
		return
	}

	var user models.User
	err = co.DB.First(&user, id).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	window, err := co.Stats.TrailingMonths(stats.UserScope(id), n, asOf)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, TrailingMonthsResponse{Data: window})
}

// GetUserTrailingDays returns daily totals for the trailing window
// ending at asOf. n defaults to 7 days.
func (co Controller) GetUserTrailingDays(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	n, asOf, ok := parseWindow(c, stats.DefaultTrailingDays)
	if !ok {
		return
	}

	var user models.User
	err = co.DB.First(&user, id).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	window, err := co.Stats.TrailingDays(stats.UserScope(id), n, asOf)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, TrailingDaysResponse{Data: window})
}
