package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetUserSummary() {
	user := suite.createTestUser(models.User{MonthlyBudget: decimal.NewFromFloat(1000)})
	_ = suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(400), Date: date(2024, 5, 10)})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/summary?month=2024-05", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromFloat(400)))
	assert.True(suite.T(), response.Data.Budget.Equal(decimal.NewFromFloat(1000)))
	assert.True(suite.T(), response.Data.Remaining.Equal(decimal.NewFromFloat(600)))
	assert.True(suite.T(), response.Data.PercentSpent.Equal(decimal.NewFromFloat(40)))
}

func (suite *TestSuiteStandard) TestGetUserSummaryMonthRequired() {
	user := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/summary", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetUserSummaryInvalidID() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/users/not-a-uuid/summary?month=2024-05", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetUserSummaryNotFound() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/users/cbf4fcbb-a16c-4f7a-be0f-b04ec95a9f50/summary?month=2024-05", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetUserCategories() {
	user := suite.createTestUser(models.User{})
	groceries := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Groceries"})
	gas := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Gas"})

	_ = suite.createTestExpense(models.Expense{UserID: user.ID, CategoryID: &groceries.ID, Amount: decimal.NewFromFloat(120), Date: date(2024, 5, 2)})
	_ = suite.createTestExpense(models.Expense{UserID: user.ID, CategoryID: &gas.ID, Amount: decimal.NewFromFloat(60), Date: date(2024, 5, 3)})
	_ = suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(15), Date: date(2024, 5, 4)})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/categories?month=2024-05", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryBreakdownResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 3) {
		assert.Equal(suite.T(), "Groceries", response.Data[0].Label)
		assert.Equal(suite.T(), "Gas", response.Data[1].Label)
		assert.Equal(suite.T(), models.UncategorizedLabel, response.Data[2].Label)
	}
}

func (suite *TestSuiteStandard) TestGetUserCategoriesFilter() {
	user := suite.createTestUser(models.User{})
	groceries := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Groceries"})
	gas := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Gas"})

	_ = suite.createTestExpense(models.Expense{UserID: user.ID, CategoryID: &groceries.ID, Amount: decimal.NewFromFloat(120), Date: date(2024, 5, 2)})
	_ = suite.createTestExpense(models.Expense{UserID: user.ID, CategoryID: &gas.ID, Amount: decimal.NewFromFloat(60), Date: date(2024, 5, 3)})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/categories?month=2024-05&filter=Groc*", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryBreakdownResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 1) {
		assert.Equal(suite.T(), "Groceries", response.Data[0].Label)
	}
}

func (suite *TestSuiteStandard) TestGetUserTrailingMonthsDefault() {
	user := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/trailing/months", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TrailingMonthsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 12)
}

func (suite *TestSuiteStandard) TestGetUserTrailingDays() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(30), Date: date(2024, 4, 19)})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/trailing/days?n=3&asOf=2024-04-20", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TrailingDaysResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 3) {
		assert.True(suite.T(), response.Data[1].Amount.Equal(decimal.NewFromFloat(30)))
	}
}

func (suite *TestSuiteStandard) TestGetUserTrailingWindowInvalid() {
	user := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/users/%s/trailing/days?n=-1", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
