package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/techschool/student-showcase-backend/api"
	"github.com/techschool/student-showcase-backend/auth"
	"github.com/techschool/student-showcase-backend/config"
	"github.com/techschool/student-showcase-backend/database"
	"github.com/techschool/student-showcase-backend/directory"
)

func main() {
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	c := config.New()

	// A missing or unreachable store is not fatal: the service keeps
	// serving empty listings and every write reports failure.
	db := connectStore(c)
	currentDB := database.New(db)
	if db == nil {
		log.Warn().Msg("Store not configured or unreachable; running in no-backend mode")
	} else if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := currentDB.Migrate(); err != nil {
			log.Error().Err(err).Msg("Migration failed")
		}
	}

	projects := directory.NewProjectDirectory(currentDB.ProjectRepo())
	stories := directory.NewStoryDirectory(currentDB.SuccessStoryRepo())

	// best effort; failures keep the empty initial lists
	_ = projects.LoadAll()
	_ = stories.LoadAll()

	tokens := auth.NewFileTokenStore(config.GetString(c, "ADMIN_TOKEN_PATH", ".admin_token"))
	gate := auth.NewGate(currentDB.AdminRepo(), tokens)
	gate.Hydrate()

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB.AdminRepo(), projects, stories, gate, tokens)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing server")
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// connectStore opens the configured Postgres-backed store. Any failure is
// logged once and reported as a nil handle, never a crash.
func connectStore(c map[string]string) *gorm.DB {
	var connStr string
	dbType := config.GetString(c, "DB_TYPE", "")
	switch dbType {
	case "supa":
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case "postgres":
		connStr = config.GetString(c, "DATABASE_URL", "")
	default:
		log.Warn().Str("dbType", dbType).Msg("Unsupported or missing DB_TYPE")
		return nil
	}

	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Error connecting to database")
		return nil
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Warn().Err(err).Msg("Error testing database connection")
		return nil
	}

	return db
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
