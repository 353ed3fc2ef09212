package models_test

import (
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetOverrideZeroIsAValue() {
	user := suite.createTestUser(models.User{MonthlyBudget: decimal.NewFromFloat(3000)})

	override := suite.createTestBudgetOverride(models.BudgetOverride{
		UserID: user.ID,
		Month:  types.NewMonth(2024, 5),
		Amount: decimal.Zero,
	})

	var read models.BudgetOverride
	err := suite.db.Where("user_id = ? AND month = ?", user.ID, override.Month).First(&read).Error

	assert.Nil(suite.T(), err)
	assert.True(suite.T(), read.Amount.IsZero())
}

func (suite *TestSuiteStandard) TestBudgetOverrideChecksUser() {
	override := models.BudgetOverride{
		UserID: uuid.New(),
		Month:  types.NewMonth(2024, 5),
		Amount: decimal.NewFromFloat(100),
	}

	err := suite.db.Create(&override).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestBudgetOverrideAmountNotNegative() {
	user := suite.createTestUser(models.User{})

	override := models.BudgetOverride{
		UserID: user.ID,
		Month:  types.NewMonth(2024, 5),
		Amount: decimal.NewFromFloat(-1),
	}

	err := suite.db.Create(&override).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestCategory(models.Category{UserID: user.ID, Name: "Food"})

	duplicate := models.Category{UserID: user.ID, Name: "Food"}
	err := suite.db.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)

	// The same name for another user is fine
	second := suite.createTestUser(models.User{})
	_ = suite.createTestCategory(models.Category{UserID: second.ID, Name: "Food"})
}
