package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Env             string                    `yaml:"env" env:"APP_ENV" env-default:"local"`
	Http            HttpConfig                `yaml:"http" env-prefix:"HTTP_"`
	Log             LogConfig                 `yaml:"log" env-prefix:"LOG_"`
	Import          ImportConfig              `yaml:"import" env-prefix:"IMPORT_"`
	DefaultDatabase string                    `yaml:"default_database" env:"DEFAULT_DATABASE"`
	Databases       map[string]DatabaseConfig `yaml:"databases"`
	Targets         []TargetRule              `yaml:"targets"`
	Clients         ClientsConfig             `yaml:"clients"`
	Audit           AuditConfig               `yaml:"audit" env-prefix:"AUDIT_"`
}

type HttpConfig struct {
	Addr         string        `yaml:"addr" env:"ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"1m"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"10m"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"FORMAT" env-default:"json"`
}

// ImportConfig holds the import policy. Booleans are phrased so that false
// is the default, since zero values are indistinguishable from "unset".
type ImportConfig struct {
	AllowedExtensions []string      `yaml:"allowed_extensions" env:"ALLOWED_EXTENSIONS" env-default:".xlsx,.xlsm"`
	MaxFileSize       int64         `yaml:"max_file_size" env:"MAX_FILE_SIZE" env-default:"20971520"`
	ProgressEvery     int           `yaml:"progress_every" env:"PROGRESS_EVERY" env-default:"100"`
	CommandTimeout    time.Duration `yaml:"command_timeout" env:"COMMAND_TIMEOUT" env-default:"5m"`

	// Truncate is the default truncate-before-load policy.
	Truncate bool `yaml:"truncate" env:"TRUNCATE"`
	// LockTruncate ignores the caller's truncate flag and always applies Truncate.
	LockTruncate bool `yaml:"lock_truncate" env:"LOCK_TRUNCATE"`
	// CreateMissingTables creates an absent target table instead of failing.
	CreateMissingTables bool `yaml:"create_missing_tables" env:"CREATE_MISSING_TABLES"`
	// TextParams binds every value as text instead of its native type.
	TextParams bool `yaml:"text_params" env:"TEXT_PARAMS"`
	// NoHeaderRow treats row 1 as data and names columns Column1..ColumnN.
	NoHeaderRow bool `yaml:"no_header_row" env:"NO_HEADER_ROW"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// TargetRule maps a file name keyword to a destination.
type TargetRule struct {
	Keyword  string `yaml:"keyword"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

type ClientsConfig struct {
	Redis    RedisConfig    `yaml:"redis" env-prefix:"REDIS_"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq" env-prefix:"RABBITMQ_"`
}

type RedisConfig struct {
	Addr      string        `yaml:"addr" env:"ADDR"`
	Password  string        `yaml:"password" env:"PASSWORD"`
	DB        int           `yaml:"db" env:"DB"`
	KeyPrefix string        `yaml:"key_prefix" env:"KEY_PREFIX" env-default:"sheet-loader:import:"`
	TTL       time.Duration `yaml:"ttl" env:"TTL" env-default:"24h"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url" env:"URL"`
	Exchange string `yaml:"exchange" env:"EXCHANGE" env-default:"sheet-loader.imports"`
}

type AuditConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Database string `yaml:"database" env:"DATABASE"`
	Table    string `yaml:"table" env:"TABLE" env-default:"import_runs"`
}

// Update is called by cleanenv after the file is parsed. DSNs may reference
// environment variables as ${NAME} so credentials stay out of the file.
func (c *Config) Update() error {
	for name, db := range c.Databases {
		db.DSN = os.ExpandEnv(db.DSN)
		db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
		c.Databases[name] = db
	}
	return nil
}

func (c *ImportConfig) IsAllowedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range c.AllowedExtensions {
		a := strings.ToLower(strings.TrimSpace(allowed))
		if !strings.HasPrefix(a, ".") {
			a = "." + a
		}
		if a == ext {
			return true
		}
	}
	return false
}
