package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/hearthledger/backend/internal/recurrence"
)

type MaterializeRequest struct {
	AsOf string `json:"asOf" example:"2024-05-01"` // Materialize cycles due up to this day instead of today
}

type RuleResult struct {
	RuleID  uuid.UUID `json:"ruleId"`  // The recurrence rule this result is for
	Created int       `json:"created"` // Number of expenses created for the rule
	Error   *string   `json:"error"`   // The error, if the rule could not be caught up
}

type MaterializeResponse struct {
	Data []RuleResult `json:"data"`
}

func newRuleResults(results []recurrence.Result) []RuleResult {
	data := make([]RuleResult, 0, len(results))
	for _, result := range results {
		r := RuleResult{
			RuleID:  result.RuleID,
			Created: result.Created,
		}
		if result.Err != nil {
			e := result.Err.Error()
			r.Error = &e
		}
		data = append(data, r)
	}

	return data
}

// RegisterMaterializeRoutes registers the routes for materialization with
// the RouterGroup that is passed.
func (co Controller) RegisterMaterializeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsMaterialize)
	r.POST("", co.Materialize)
}

// OptionsMaterialize returns the allowed HTTP methods
func (co Controller) OptionsMaterialize(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Materialize catches all due recurrence rules up and reports the
// per-rule outcome. The call is idempotent: repeating it creates no
// additional expenses.
func (co Controller) Materialize(c *gin.Context) {
	var body MaterializeRequest
	if c.Request.ContentLength > 0 {
		if err := httputil.BindData(c, &body); err != nil {
			return
		}
	}

	var results []recurrence.Result
	var err error

	if body.AsOf == "" {
		results, err = co.Engine.Run(c.Request.Context())
	} else {
		var asOf time.Time
		asOf, err = time.Parse("2006-01-02", body.AsOf)
		if err != nil {
			httputil.NewError(c, http.StatusBadRequest, err)
			return
		}

		results, err = co.Engine.RunAsOf(c.Request.Context(), asOf)
	}

	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, MaterializeResponse{Data: newRuleResults(results)})
}
