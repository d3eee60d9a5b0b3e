package repositories

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tracker-server/configs"
	"tracker-server/internal/loggers"
	"tracker-server/internal/models"
)

type dbs struct {
	Postgres *gorm.DB
	Redis    *redis.Client
}

// DBS holds the shared database connections, initialized once at startup.
var DBS dbs

// Init opens the PostgreSQL and Redis connections and runs schema migration.
func Init(log *zap.Logger) {
	initPostgres(log)
	initRedis(log)
}

func initPostgres(log *zap.Logger) {
	cfg := configs.Configs.Database
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	gormLogger := loggers.NewZapGormLogger(log, gormlogger.Warn, 200*time.Millisecond, true)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		// Driver errors become gorm.ErrDuplicatedKey etc., which the
		// repositories translate into coded errors.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to access database handle", zap.Error(err))
		return
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
		return
	}

	DBS.Postgres = db
	log.Info("PostgreSQL connected successfully", zap.String("database", cfg.Name))
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamInvitation{},
		&models.Provider{},
		&models.Item{},
		&models.Tag{},
		&models.ItemTag{},
	)
	if err != nil {
		return err
	}

	// Constraints AutoMigrate cannot express: one pending invitation per
	// (team, email), and per-team case-insensitive tag names.
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_team_invitations_pending
			ON team_invitations (team_id, LOWER(email_invited))
			WHERE status = 'pending'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_team_lower_name
			ON tags (team_id, LOWER(name))`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func initRedis(log *zap.Logger) {
	cfg := configs.Configs.Redis
	opt := &redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	}
	if cfg.TLS {
		opt.TLSConfig = &tls.Config{}
	}

	DBS.Redis = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := DBS.Redis.Ping(ctx).Result()
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
		return
	}

	log.Info("Redis connected successfully", zap.String("result", result))
}
