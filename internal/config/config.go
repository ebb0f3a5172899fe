// Package config loads runtime configuration from the environment, with an
// optional .env file applied first.
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/booster-sim/internal/distribution"
	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/orchestrators/booster"
)

// Store kinds
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the process configuration
type Config struct {
	Store string `env:"BOOSTER_STORE" envDefault:"sqlite"`

	RedisAddr       string `env:"BOOSTER_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize   int    `env:"BOOSTER_REDIS_POOL_SIZE" envDefault:"10"`
	RedisMaxRetries int    `env:"BOOSTER_REDIS_MAX_RETRIES" envDefault:"3"`
	RedisTLS        bool   `env:"BOOSTER_REDIS_TLS"`

	SQLitePath string `env:"BOOSTER_SQLITE_PATH" envDefault:"cards.db"`

	// Set is the default set packs are opened from
	Set string `env:"BOOSTER_SET" envDefault:"KOV"`
	// ExtraSets adds sets beyond the built-in ones, as CODE or CODE:Name
	ExtraSets []string `env:"BOOSTER_EXTRA_SETS" envSeparator:","`

	BonusSetChance       float64   `env:"BOOSTER_BONUS_CHANCE" envDefault:"0.02"`
	HeroRarity           []float64 `env:"BOOSTER_HERO_RARITY" envDefault:"0.8,0.2"`
	CommandRarityOpen    []float64 `env:"BOOSTER_COMMAND_RARITY_OPEN" envDefault:"0.7,0.2,0.1"`
	CommandRarityUpgrade []float64 `env:"BOOSTER_COMMAND_RARITY_UPGRADE" envDefault:"0.75,0.25"`
	BasicRarityUpgrade   []float64 `env:"BOOSTER_BASIC_RARITY_UPGRADE" envDefault:"0.7,0.3"`
	RarityPolicy         string    `env:"BOOSTER_RARITY_POLICY" envDefault:"ignore"`

	GRPCPort int    `env:"BOOSTER_GRPC_PORT" envDefault:"50051"`
	HTTPAddr string `env:"BOOSTER_HTTP_ADDR" envDefault:":8080"`

	// Seed makes generation reproducible; 0 uses the crypto-backed dice source
	Seed uint64 `env:"BOOSTER_SEED"`

	LogLevel  string `env:"BOOSTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"BOOSTER_LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (".env" when none are named; missing files
// are skipped) and then parses the environment.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to load %s", file)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Validate checks every field, reporting all problems at once
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	switch c.Store {
	case StoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			vb.RequiredField("BOOSTER_REDIS_ADDR")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			vb.RequiredField("BOOSTER_SQLITE_PATH")
		}
	default:
		vb.Fieldf("BOOSTER_STORE", "must be %q or %q, got %q", StoreRedis, StoreSQLite, c.Store)
	}

	sets, err := c.Sets()
	if err != nil {
		vb.InvalidField("BOOSTER_EXTRA_SETS", errors.GetMessage(err))
	} else if _, ok := entities.FindSet(sets, c.Set); !ok {
		vb.Fieldf("BOOSTER_SET", "unknown set %q", c.Set)
	}

	if c.BonusSetChance < 0 || c.BonusSetChance > 1 {
		vb.Fieldf("BOOSTER_BONUS_CHANCE", "must be between 0.0 and 1.0, got %v", c.BonusSetChance)
	}
	checkDistribution(vb, "BOOSTER_HERO_RARITY", c.HeroRarity)
	checkDistribution(vb, "BOOSTER_COMMAND_RARITY_OPEN", c.CommandRarityOpen)
	checkDistribution(vb, "BOOSTER_COMMAND_RARITY_UPGRADE", c.CommandRarityUpgrade)
	checkDistribution(vb, "BOOSTER_BASIC_RARITY_UPGRADE", c.BasicRarityUpgrade)

	if _, err := booster.ParseRarityPolicy(c.RarityPolicy); err != nil {
		vb.InvalidField("BOOSTER_RARITY_POLICY", errors.GetMessage(err))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("BOOSTER_GRPC_PORT", "must be a valid port, got %d", c.GRPCPort)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.InvalidField("BOOSTER_LOG_LEVEL", err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		vb.Fieldf("BOOSTER_LOG_FORMAT", "must be text or json, got %q", c.LogFormat)
	}

	return vb.Build()
}

func checkDistribution(vb *errors.ValidationBuilder, field string, values []float64) {
	if _, err := distribution.New(values...); err != nil {
		vb.InvalidField(field, errors.GetMessage(err))
	}
}

// Sets returns the built-in sets plus any configured extras
func (c *Config) Sets() ([]entities.Set, error) {
	sets := entities.DefaultSets()
	for _, spec := range c.ExtraSets {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		set, err := entities.ParseSetSpec(spec)
		if err != nil {
			return nil, err
		}
		if _, exists := entities.FindSet(sets, set.Code); exists {
			return nil, errors.InvalidArgumentf("set %s is already defined", set.Code)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// Rules builds pack rules for set from the configured probabilities
func (c *Config) Rules(set entities.Set) (*booster.Rules, error) {
	hero, err := distribution.New(c.HeroRarity...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hero rarity")
	}
	open, err := distribution.New(c.CommandRarityOpen...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid command rarity")
	}
	upgrade, err := distribution.New(c.CommandRarityUpgrade...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid command rarity upgrade")
	}
	basic, err := distribution.New(c.BasicRarityUpgrade...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid basic card rarity upgrade")
	}
	policy, err := booster.ParseRarityPolicy(c.RarityPolicy)
	if err != nil {
		return nil, err
	}

	rules, err := booster.NewRules(set, c.BonusSetChance, hero, open, upgrade, basic)
	if err != nil {
		return nil, err
	}
	return rules.WithRarityPolicy(policy), nil
}

// NewLogger builds the process logger writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
