package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecurrenceRuleFrequencyValidation() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		frequency models.Frequency
		err       error
	}{
		{models.FrequencyMonthly, nil},
		{models.FrequencyYearly, nil},
		{"weekly", models.ErrFrequencyInvalid},
		{"", models.ErrFrequencyInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(string(tt.frequency), func(t *testing.T) {
			rule := models.RecurrenceRule{
				UserID:    user.ID,
				Frequency: tt.frequency,
				NextDue:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			}

			err := suite.db.Create(&rule).Error
			if tt.err == nil {
				assert.Nil(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestRecurrenceRuleAmountNotNegative() {
	user := suite.createTestUser(models.User{})

	rule := models.RecurrenceRule{
		UserID:    user.ID,
		Frequency: models.FrequencyMonthly,
		NextDue:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromFloat(-10),
	}

	err := suite.db.Create(&rule).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestRecurrenceRuleAnchorDayDefault() {
	user := suite.createTestUser(models.User{})

	rule := suite.createTestRecurrenceRule(models.RecurrenceRule{
		UserID:    user.ID,
		Frequency: models.FrequencyMonthly,
		NextDue:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(suite.T(), 31, rule.AnchorDay)
}

func (suite *TestSuiteStandard) TestRecurrenceRuleNormalizesDueDate() {
	user := suite.createTestUser(models.User{})

	rule := suite.createTestRecurrenceRule(models.RecurrenceRule{
		UserID:    user.ID,
		Frequency: models.FrequencyYearly,
		NextDue:   time.Date(2024, 6, 1, 1, 59, 23, 0, time.FixedZone("CEST", 2*60*60)),
	})

	assert.Equal(suite.T(), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), rule.NextDue)
}

func (suite *TestSuiteStandard) TestRecurrenceRuleTrimWhitespace() {
	user := suite.createTestUser(models.User{})
	description := "  Rent  \t"

	rule := suite.createTestRecurrenceRule(models.RecurrenceRule{
		UserID:      user.ID,
		Description: description,
		Frequency:   models.FrequencyMonthly,
		NextDue:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(suite.T(), strings.TrimSpace(description), rule.Description)
}

func (suite *TestSuiteStandard) TestRecurrenceRuleChecksUser() {
	rule := models.RecurrenceRule{
		UserID:    uuid.New(),
		Frequency: models.FrequencyMonthly,
		NextDue:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := suite.db.Create(&rule).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
