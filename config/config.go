// Package config holds the settings of a pagesim run and loads them from a
// YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/report"
)

// ErrInvalidConfig is wrapped by every error caused by bad settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "PAGESIM_"

// AutoDatabase asks for a database with a generated name.
const AutoDatabase = "auto"

// Config contains the settings of a run.
type Config struct {
	// Input is the file holding the problem. Exclusive with Random.
	Input string `yaml:"input"`

	// Random draws a problem instead of reading Input. The problem is
	// written to GeneratedInput. A zero Seed picks one from the clock.
	Random         bool   `yaml:"random"`
	Seed           int64  `yaml:"seed"`
	GeneratedInput string `yaml:"generated_input" validate:"required"`

	Output   string `yaml:"output" validate:"required"`
	CSV      string `yaml:"csv"`
	Database string `yaml:"database"`

	// Policies restricts the simulation. Empty runs every policy.
	Policies []string `yaml:"policies" validate:"dive,policy"`
	Verbose  bool     `yaml:"verbose"`

	LogLevel string `yaml:"log_level" validate:"loglevel"`
	LogFile  string `yaml:"log_file"`

	Monitor     bool `yaml:"monitor"`
	MonitorPort int  `yaml:"monitor_port" validate:"omitempty,min=1024,max=65535"`
	OpenBrowser bool `yaml:"open_browser"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		GeneratedInput: refstring.DefaultGeneratedFile,
		Output:         report.DefaultOutputFile,
		LogLevel:       "INFO",
	}
}

// Load returns the defaults overridden by the YAML file at path (if path is
// not empty), then by the .env files and the environment.
func Load(path string, envFiles ...string) (Config, error) {
	c := Default()

	if path != "" {
		err := c.LoadFile(path)
		if err != nil {
			return c, err
		}
	}

	err := c.LoadEnv(envFiles...)
	if err != nil {
		return c, err
	}

	return c, nil
}

// LoadFile overrides the settings present in the YAML file at path. Unknown
// keys are rejected.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	err = dec.Decode(c)
	if err != nil {
		return fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, path, err)
	}

	return nil
}

// LoadEnv overrides the settings from PAGESIM_* variables. Variables are
// read from the given .env files first; the process environment wins over
// the files. Missing .env files are ignored.
func (c *Config) LoadEnv(envFiles ...string) error {
	vars := make(map[string]string)

	for _, file := range envFiles {
		fileVars, err := godotenv.Read(file)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, file, err)
		}

		for k, v := range fileVars {
			vars[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, EnvPrefix) {
			vars[k] = v
		}
	}

	return c.applyEnv(vars)
}

func (c *Config) applyEnv(vars map[string]string) error {
	strs := map[string]*string{
		"INPUT":           &c.Input,
		"GENERATED_INPUT": &c.GeneratedInput,
		"OUTPUT":          &c.Output,
		"CSV":             &c.CSV,
		"DATABASE":        &c.Database,
		"LOG_LEVEL":       &c.LogLevel,
		"LOG_FILE":        &c.LogFile,
	}
	for name, field := range strs {
		if v, ok := vars[EnvPrefix+name]; ok {
			*field = v
		}
	}

	bools := map[string]*bool{
		"RANDOM":       &c.Random,
		"VERBOSE":      &c.Verbose,
		"MONITOR":      &c.Monitor,
		"OPEN_BROWSER": &c.OpenBrowser,
	}
	for name, field := range bools {
		v, ok := vars[EnvPrefix+name]
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, name, err)
		}

		*field = b
	}

	if v, ok := vars[EnvPrefix+"SEED"]; ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED: %w", ErrInvalidConfig, EnvPrefix, err)
		}

		c.Seed = seed
	}

	if v, ok := vars[EnvPrefix+"MONITOR_PORT"]; ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMONITOR_PORT: %w",
				ErrInvalidConfig, EnvPrefix, err)
		}

		c.MonitorPort = port
	}

	if v, ok := vars[EnvPrefix+"POLICIES"]; ok {
		c.Policies = SplitList(v)
	}

	return nil
}

// SplitList splits a comma-separated list and drops empty items.
func SplitList(s string) []string {
	var items []string

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.Input != "" && c.Random {
		return fmt.Errorf("%w: input and random are exclusive", ErrInvalidConfig)
	}

	if c.OpenBrowser && !c.Monitor {
		return fmt.Errorf("%w: open_browser requires monitor", ErrInvalidConfig)
	}

	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// SlogLevel returns the log level to install.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

// DatabaseName returns the name of the database to record into, or "" when
// nothing is recorded.
func (c Config) DatabaseName(generate func() string) string {
	if strings.EqualFold(c.Database, AutoDatabase) {
		return generate()
	}

	return c.Database
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	mustRegister(v, "policy", func(fl validator.FieldLevel) bool {
		_, ok := policy.New(fl.Field().String())
		return ok
	})

	mustRegister(v, "loglevel", func(fl validator.FieldLevel) bool {
		var level slog.Level
		return level.UnmarshalText([]byte(fl.Field().String())) == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	err := v.RegisterValidation(tag, fn)
	if err != nil {
		panic(err)
	}
}
