package configs

import (
	"os"

	"go.uber.org/zap"

	"tracker-server/pkg/config"
	"tracker-server/pkg/logger"
)

// Config defines the structure for all configuration settings.
type Config struct {
	Service  Service  `yaml:"service"`
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	Cors     Cors     `yaml:"cors"`
	Email    Email    `yaml:"email"`
	Secrets  Secrets  `yaml:"secrets"`
	Log      Log      `yaml:"log"`
}

// Service holds configuration for the service itself.
type Service struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	BaseURL string `yaml:"base_url"`
}

// Server holds configuration for the HTTP server.
type Server struct {
	Port  string `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// Database holds configuration for the PostgreSQL connection.
type Database struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Name         string `yaml:"name"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// Redis holds configuration for Redis.
type Redis struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
	TLS      bool   `yaml:"tls"`
}

// Cors holds configuration for CORS settings.
type Cors struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// Email holds configuration for SMTP delivery.
type Email struct {
	SMTPHost    string `yaml:"smtp_host"`
	SMTPPort    int    `yaml:"smtp_port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	SenderEmail string `yaml:"sender_email"`
}

// Secrets holds signing secrets.
type Secrets struct {
	JWTSecret     string `yaml:"jwt_secret"`
	SessionSecret string `yaml:"session_secret"`
}

// Log holds configuration for logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

var (
	// Configs holds the application's configuration.
	Configs *Config
	// Logger is the application-wide zap logger.
	Logger *zap.Logger
)

// Init loads the configuration and builds the application logger.
func Init(configPath *string) {
	if configPath != nil && *configPath != "" {
		os.Setenv("CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load("tracker")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	appConfig := &Config{}

	appConfig.Service.Name = cfg.GetString("service.name")
	appConfig.Service.Version = cfg.GetString("service.version")
	appConfig.Service.BaseURL = cfg.GetString("service.base_url")

	appConfig.Server.Port = cfg.GetString("server.port")
	appConfig.Server.Debug = cfg.GetBool("server.debug")

	appConfig.Database.Host = cfg.GetString("database.host")
	appConfig.Database.Port = cfg.GetInt("database.port")
	appConfig.Database.Name = cfg.GetString("database.name")
	appConfig.Database.User = cfg.GetString("database.user")
	appConfig.Database.Password = cfg.GetString("database.password")
	appConfig.Database.SSLMode = cfg.GetString("database.ssl_mode")
	appConfig.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	appConfig.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")

	appConfig.Redis.Address = cfg.GetString("redis.address")
	appConfig.Redis.Username = cfg.GetString("redis.username")
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.Database = cfg.GetInt("redis.database")
	appConfig.Redis.TLS = cfg.GetBool("redis.tls")

	appConfig.Cors.AllowedOrigins = cfg.GetStringSlice("cors.allowed_origins")
	appConfig.Cors.AllowedMethods = cfg.GetStringSlice("cors.allowed_methods")
	appConfig.Cors.AllowedHeaders = cfg.GetStringSlice("cors.allowed_headers")
	appConfig.Cors.AllowCredentials = cfg.GetBool("cors.allow_credentials")

	appConfig.Email.SMTPHost = cfg.GetString("email.smtp_host")
	appConfig.Email.SMTPPort = cfg.GetInt("email.smtp_port")
	appConfig.Email.Username = cfg.GetString("email.username")
	appConfig.Email.Password = cfg.GetString("email.password")
	appConfig.Email.SenderEmail = cfg.GetString("email.sender_email")

	appConfig.Secrets.JWTSecret = cfg.GetString("secrets.jwt_secret")
	appConfig.Secrets.SessionSecret = cfg.GetString("secrets.session_secret")

	appConfig.Log.Level = cfg.GetString("log.level")
	appConfig.Log.Format = cfg.GetString("log.format")
	appConfig.Log.Output = cfg.GetString("log.output")

	log, err := logger.NewZapLogger(logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		Development: appConfig.Server.Debug,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	Configs = appConfig
	Logger = log
}
