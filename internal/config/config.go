package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/lobby"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the server configuration parsed from environment variables.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Catalog: a JSON/YAML file, or a generated one when empty
	CatalogPath string `env:"CATALOG_PATH"`
	CatalogSize int    `env:"CATALOG_SIZE" envDefault:"500"`
	CatalogSeed uint64 `env:"CATALOG_SEED" envDefault:"2025"`

	// Lobby clock
	AITick       time.Duration `env:"AI_TICK" envDefault:"3500ms"`
	FairWarning  time.Duration `env:"FAIR_WARNING" envDefault:"5s"`
	FinalWarning time.Duration `env:"FINAL_WARNING" envDefault:"15s"`
	AutoResolve  time.Duration `env:"AUTO_RESOLVE" envDefault:"25s"`

	// League rules, overridable for testing
	Purse                decimal.Decimal `env:"PURSE" envDefault:"120"`
	RosterFloor          int             `env:"ROSTER_FLOOR" envDefault:"18"`
	RosterCeiling        int             `env:"ROSTER_CEILING" envDefault:"25"`
	OverseasCeiling      int             `env:"OVERSEAS_CEILING" envDefault:"8"`
	RetentionEnabled     bool            `env:"RETENTION_ENABLED" envDefault:"true"`
	CapacityUnsoldChance float64         `env:"CAPACITY_UNSOLD_CHANCE" envDefault:"0.4"`
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses cfg from vars only, ignoring the process environment.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if _, lerr := zapcore.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("LOG_LEVEL: %w", lerr))
	}
	if c.CatalogPath == "" && c.CatalogSize < 1 {
		err = multierr.Append(err, fmt.Errorf("CATALOG_SIZE must be positive, got %d", c.CatalogSize))
	}
	if !c.Purse.IsPositive() {
		err = multierr.Append(err, fmt.Errorf("PURSE must be positive, got %s", c.Purse))
	}
	if c.RosterFloor < 0 || c.RosterCeiling < 1 || c.RosterFloor > c.RosterCeiling {
		err = multierr.Append(err, fmt.Errorf("roster bounds %d..%d are invalid", c.RosterFloor, c.RosterCeiling))
	}
	if c.OverseasCeiling < 0 {
		err = multierr.Append(err, fmt.Errorf("OVERSEAS_CEILING must not be negative"))
	}
	if c.CapacityUnsoldChance < 0 || c.CapacityUnsoldChance > 1 {
		err = multierr.Append(err, fmt.Errorf("CAPACITY_UNSOLD_CHANCE must be within [0,1], got %v", c.CapacityUnsoldChance))
	}
	for name, d := range map[string]time.Duration{
		"AI_TICK":       c.AITick,
		"FAIR_WARNING":  c.FairWarning,
		"FINAL_WARNING": c.FinalWarning,
		"AUTO_RESOLVE":  c.AutoResolve,
	} {
		if d < 0 {
			err = multierr.Append(err, fmt.Errorf("%s must not be negative", name))
		}
	}
	if c.AutoResolve > 0 && (c.FairWarning > c.AutoResolve || c.FinalWarning > c.AutoResolve) {
		err = multierr.Append(err, errors.New("warnings must fire before AUTO_RESOLVE"))
	}
	return err
}

func (c Config) Rules() engine.Rules {
	r := engine.DefaultRules()
	r.Purse = c.Purse
	r.RosterFloor = c.RosterFloor
	r.RosterCeiling = c.RosterCeiling
	r.OverseasCeiling = c.OverseasCeiling
	r.RetentionEnabled = c.RetentionEnabled
	r.CapacityUnsoldChance = c.CapacityUnsoldChance
	return r
}

func (c Config) Timings() lobby.Timings {
	return lobby.Timings{
		AITick:       c.AITick,
		FairWarning:  c.FairWarning,
		FinalWarning: c.FinalWarning,
		AutoResolve:  c.AutoResolve,
	}
}

func (c Config) Catalog() (catalog.Catalog, error) {
	if c.CatalogPath != "" {
		return catalog.LoadFile(c.CatalogPath)
	}
	return catalog.Generate(c.CatalogSize, c.CatalogSeed), nil
}

// Logger builds a production logger, or a development one when APP_ENV is
// "development".
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.AppEnv == "development" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
