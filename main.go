package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/budget"
	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/recurrence"
	"github.com/hearthledger/backend/internal/router"
	"github.com/hearthledger/backend/internal/stats"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load a .env file if one exists. Environment variables that are
	// already set take precedence.
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		// Create the data directory for the default database location
		dataDir := filepath.Join(".", "data")
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn = filepath.Join(dataDir, "hearthledger.db")
	}

	db, err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	policy, err := stats.ParseGroupScopePolicy(os.Getenv("GROUP_SCOPE"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	controller := v1.Controller{
		DB:     db,
		Engine: recurrence.NewEngine(db, recurrence.SystemClock{}),
		Stats:  stats.New(db, budget.NewResolver(db), policy),
	}

	r, teardown, err := router.Config()
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(controller, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
