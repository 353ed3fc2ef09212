package v1_test

import (
	"net/http"

	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMaterializeCatchesUp() {
	user := suite.createTestUser(models.User{})
	rule := suite.createTestRecurrenceRule(models.RecurrenceRule{
		UserID:      user.ID,
		Description: "Rent",
		Amount:      decimal.NewFromFloat(1200),
		NextDue:     date(2024, 2, 10),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/materialize", v1.MaterializeRequest{AsOf: "2024-04-20"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MaterializeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 1) {
		assert.Equal(suite.T(), rule.ID, response.Data[0].RuleID)
		assert.Equal(suite.T(), 3, response.Data[0].Created)
		assert.Nil(suite.T(), response.Data[0].Error)
	}

	var count int64
	suite.controller.DB.Model(&models.Expense{}).Where("rule_id = ?", rule.ID).Count(&count)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *TestSuiteStandard) TestMaterializeIsIdempotent() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestRecurrenceRule(models.RecurrenceRule{
		UserID:      user.ID,
		Description: "Streaming",
		Amount:      decimal.NewFromFloat(10),
		NextDue:     date(2024, 3, 1),
	})

	body := v1.MaterializeRequest{AsOf: "2024-03-05"}

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/materialize", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/materialize", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MaterializeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)

	var count int64
	suite.controller.DB.Model(&models.Expense{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestMaterializeWithoutBody() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/materialize", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MaterializeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestMaterializeInvalidAsOf() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/materialize", v1.MaterializeRequest{AsOf: "not-a-date"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMaterializeInvalidBody() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/materialize", `{ invalid json`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMaterializeOptions() {
	recorder := test.Request(suite.T(), suite.router, http.MethodOptions, "/v1/materialize", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "POST", recorder.Header().Get("allow"))
}
