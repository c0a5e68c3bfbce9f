package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database selected by DB_TYPE. postgres reads
// DATABASE_URL, supa builds a DSN from the SUPABASE_DB_* keys and sqlite opens
// SQLITE_PATH. When DB_REPLICA_DSN is set, reads are routed to that replica.
func Open(c *config.Config) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(c, "DB_TYPE", "postgres"))
	log.Info().Str("dbType", dbType).Msg("Connecting to database")

	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      newGormLogger(logger.Warn),
	}

	var dialector gorm.Dialector
	switch dbType {
	case "postgres":
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return nil, errs.NewEnvironmentVariableError("DATABASE_URL")
		}
		dialector = postgresDialector(dsn)
	case "supa":
		dialector = postgresDialector(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		))
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(config.GetString(c, "SQLITE_PATH", "portfolio.db")))
	default:
		return nil, errs.NewConfigError("DB_TYPE", fmt.Errorf("unsupported database type %q", dbType))
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbType, err)
	}

	if replica := config.GetString(c, "DB_REPLICA_DSN", ""); replica != "" && dbType != "sqlite" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          []gorm.Dialector{postgresDialector(replica)},
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: true,
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("Routing reads to replica")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

// OpenMemory opens a private in-memory SQLite database. It backs the tests
// and `serve --memory` for quick local runs.
func OpenMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(sqliteDSN(dsn)), &gorm.Config{
		Logger: newGormLogger(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to a shared-cache memory db sees the same data, one is enough
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// sqliteDSN turns on foreign key enforcement for every pooled connection
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

func newGormLogger(level logger.LogLevel) logger.Interface {
	gormLog := log.With().Str("component", "gorm").Logger()
	return logger.New(
		&gormLog,
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
