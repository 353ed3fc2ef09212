package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the SQLite database, migrates the schema and configures the
// connection pool. The handle it returns is passed explicitly to everything
// that needs the database, there is no package level connection.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	// Query callbacks
	err = db.Callback().Query().After("*").Register("hearthledger:after_query", queryCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Query().After("*").Register("hearthledger:after_query_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("hearthledger:after_create", createUpdateCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Create().After("*").Register("hearthledger:after_create_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("hearthledger:after_update", createUpdateCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Update().After("*").Register("hearthledger:after_update_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("hearthledger:after_delete_general", generalCallback)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// At most one expense per (rule, cycle date). This is the duplicate
	// cycle guard for concurrent materialization runs.
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: expenses.rule_id, expenses.date") {
		db.Error = ErrCycleAlreadyMaterialized
	}

	// Category names need to be unique per user
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: categories.user_id, categories.name") {
		db.Error = ErrCategoryNameNotUnique
	}

	// A user can be in a group only once
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: group_memberships.group_id, group_memberships.user_id") {
		db.Error = ErrAlreadyMember
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Category{}, Group{}, GroupMembership{}, RecurrenceRule{}, Expense{}, BudgetOverride{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
