package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Group represents a family group sharing expenses.
//
// Budget is the explicit group budget. When it is not positive, the
// effective group budget is the sum of the members' effective budgets,
// see budget.Resolver.
type Group struct {
	DefaultModel
	Name        string
	Note        string
	AdminUser   User      `json:"-"`
	AdminUserID uuid.UUID `json:"adminUserId"`
	Budget      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// GroupMembership connects a user to a group. The composite primary key
// makes duplicate memberships a constraint violation.
type GroupMembership struct {
	Timestamps
	Group  Group     `json:"-"`
	GroupID uuid.UUID `gorm:"primaryKey"`
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"primaryKey"`
}

func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

func (g *Group) AfterSave(_ *gorm.DB) error {
	if g.Budget.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Group)
	return g.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (g *Group) checkIntegrity(tx *gorm.DB, toSave Group) error {
	return tx.First(&User{}, toSave.AdminUserID).Error
}

func (m *GroupMembership) BeforeCreate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(*GroupMembership)

	err := tx.First(&Group{}, toSave.GroupID).Error
	if err != nil {
		return err
	}

	return tx.First(&User{}, toSave.UserID).Error
}

// Members returns all current members of the group.
//
// Membership is read with current snapshot semantics: adding or removing a
// member changes future queries only.
func (g Group) Members(db *gorm.DB) ([]User, error) {
	var users []User

	err := db.
		Joins("JOIN group_memberships ON group_memberships.user_id = users.id").
		Where("group_memberships.group_id = ?", g.ID).
		Order("users.name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// IsMember reports whether the user is a current member of the group.
func (g Group) IsMember(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64

	err := db.Model(&GroupMembership{}).
		Where(&GroupMembership{GroupID: g.ID, UserID: userID}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
