package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/hearthledger/backend/internal/stats"
)

// RegisterGroupRoutes registers the routes for group statistics with
// the RouterGroup that is passed.
func (co Controller) RegisterGroupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id/summary", httputil.OptionsGet)
	r.GET("/:id/summary", co.GetGroupSummary)

	r.OPTIONS("/:id/categories", httputil.OptionsGet)
	r.GET("/:id/categories", co.GetGroupCategories)

	r.OPTIONS("/:id/trailing/months", httputil.OptionsGet)
	r.GET("/:id/trailing/months", co.GetGroupTrailingMonths)

	r.OPTIONS("/:id/trailing/days", httputil.OptionsGet)
	r.GET("/:id/trailing/days", co.GetGroupTrailingDays)
}

// GetGroupSummary returns the budget status of a group for a month,
// including the per-member breakdown. When the member query parameter is
// set, the call is rejected unless that user is a member of the group.
func (co Controller) GetGroupSummary(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	member, ok := parseMember(c)
	if !ok {
		return
	}

	if member != nil {
		if err := co.Stats.RequireMember(id, *member); err != nil {
			httputil.NewError(c, status(err), err)
			return
		}
	}

	summary, err := co.Stats.GroupSummary(id, month)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	members, err := co.Stats.PerMemberBreakdown(id, month)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, GroupSummaryResponse{Data: GroupSummary{
		Summary: summary,
		Members: members,
	}})
}

// GetGroupCategories returns the per-category spending of a group for a
// month. The member query parameter restricts the breakdown to the
// expenses of a single group member, the filter query parameter restricts
// the categories by glob match on the label.
func (co Controller) GetGroupCategories(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	member, ok := parseMember(c)
	if !ok {
		return
	}

	if member != nil {
		if err := co.Stats.RequireMember(id, *member); err != nil {
			httputil.NewError(c, status(err), err)
			return
		}
	} else if err := co.Stats.RequireGroup(id); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	breakdown, err := co.Stats.CategoryBreakdown(stats.GroupScope(id), month, member)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, CategoryBreakdownResponse{Data: filterLabels(c, breakdown)})
}

// GetGroupTrailingMonths returns monthly totals for the trailing window
// ending at asOf. n defaults to 12 months.
func (co Controller) GetGroupTrailingMonths(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	n, asOf, ok := parseWindow(c, stats.DefaultTrailingMonths)
	if !ok {
		return
	}

	if err := co.Stats.RequireGroup(id); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	window, err := co.Stats.TrailingMonths(stats.GroupScope(id), n, asOf)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, TrailingMonthsResponse{Data: window})
}

// GetGroupTrailingDays returns daily totals for the trailing window
// ending at asOf. n defaults to 7 days.
func (co Controller) GetGroupTrailingDays(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	n, asOf, ok := parseWindow(c, stats.DefaultTrailingDays)
	if !ok {
		return
	}

	if err := co.Stats.RequireGroup(id); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	window, err := co.Stats.TrailingDays(stats.GroupScope(id), n, asOf)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, TrailingDaysResponse{Data: window})
}
