// Contains in one place the things controlling how the interpreter runs and what it tells us about
// its inner workings. The defaults are what the `teo` command uses when given no config file; the
// lexer, parser and evaluator only ever see a *Config or a logger derived from one.

package settings

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_MAX_CALL_DEPTH = 1000
	DEFAULT_LOG_LEVEL      = "warn"
)

type Transcript struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type Config struct {
	MaxCallDepth int        `yaml:"max_call_depth"`
	Echo         bool       `yaml:"echo"`
	LogLevel     string     `yaml:"log_level"`
	Transcript   Transcript `yaml:"transcript"`
}

func Default() *Config {
	return &Config{
		MaxCallDepth: DEFAULT_MAX_CALL_DEPTH,
		Echo:         true,
		LogLevel:     DEFAULT_LOG_LEVEL,
	}
}

// Fields missing from the file keep their default values. Unknown fields are an error, so that a
// misspelt key doesn't silently do nothing.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "settings: decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "settings: reading %s", path)
	}
	return Load(bytes.NewReader(data))
}

func (c *Config) Validate() error {
	if c.MaxCallDepth < 1 {
		return errors.Errorf("settings: max_call_depth must be positive, not %d", c.MaxCallDepth)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "settings: log_level")
	}
	if (c.Transcript.Driver == "") != (c.Transcript.DSN == "") {
		return errors.New("settings: transcript needs both a driver and a dsn")
	}
	return nil
}

// Builds the logger the lexer, parser and evaluator trace to. At debug level we see every token,
// every parsed statement and every function call.
func (c *Config) Logger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	return log
}

// For when nobody has asked for a logger.
func DiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
