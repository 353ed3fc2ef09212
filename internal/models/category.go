package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups expenses for breakdown reporting.
type Category struct {
	DefaultModel
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"uniqueIndex:category_user_id_name"`
	Name   string    `gorm:"uniqueIndex:category_user_id_name"`
	Note   string
}

// UncategorizedLabel is the sentinel label used for expenses
// without a category.
const UncategorizedLabel = "Uncategorized"

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	return tx.First(&User{}, toSave.UserID).Error
}
