// Package config resolves runtime settings from defaults, an optional .env
// file, INKARENA_* environment variables and command-line flags, in that
// order of precedence (later wins).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "INKARENA_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by the binaries.
type Config struct {
	MatchDuration    time.Duration
	Seed             int64 // 0 picks one from the clock
	Mute             bool
	LogLevel         string
	LineOfSight      bool
	AllAI            bool
	MouseSensitivity float64 // radians per pixel
	WindowScale      float64
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MatchDuration:    180 * time.Second,
		LogLevel:         "info",
		MouseSensitivity: 0.0025,
		WindowScale:      1,
	}
}

// Load returns Default overlaid with envFile (if it exists) and the process
// environment. An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	if v, ok := get("MATCH_DURATION"); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sMATCH_DURATION=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.MatchDuration = d
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.Seed = n
	}
	for key, dst := range map[string]*bool{"MUTE": &c.Mute, "LINE_OF_SIGHT": &c.LineOfSight, "ALL_AI": &c.AllAI} {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, key, v, err)
			}
			*dst = b
		}
	}
	for key, dst := range map[string]*float64{"MOUSE_SENSITIVITY": &c.MouseSensitivity, "WINDOW_SCALE": &c.WindowScale} {
		if v, ok := get(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, key, v, err)
			}
			*dst = f
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// parseDuration accepts Go durations ("90s", "3m") or bare seconds ("90").
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}

// RegisterFlags binds every field to fs using the current values as
// defaults. Call Validate after fs.Parse.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.MatchDuration, "duration", c.MatchDuration, "match length")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = from clock)")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable sound")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.LineOfSight, "los", c.LineOfSight, "AI needs a clear line of sight to target")
	fs.BoolVar(&c.AllAI, "all-ai", c.AllAI, "let the AI drive the player slot")
	fs.Float64Var(&c.MouseSensitivity, "mouse", c.MouseSensitivity, "mouse look radians per pixel")
	fs.Float64Var(&c.WindowScale, "scale", c.WindowScale, "window size multiplier")
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.MatchDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: match duration %s must be positive", ErrInvalid, c.MatchDuration))
	}
	if c.MouseSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("%w: mouse sensitivity %v must be positive", ErrInvalid, c.MouseSensitivity))
	}
	if c.WindowScale < 0.25 || c.WindowScale > 4 {
		errs = append(errs, fmt.Errorf("%w: window scale %v outside 0.25..4", ErrInvalid, c.WindowScale))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel))
	}
	return errors.Join(errs...)
}

// ResolveSeed returns Seed, or now's nanoseconds when Seed is 0.
func (c Config) ResolveSeed(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
