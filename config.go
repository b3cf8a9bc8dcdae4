package todolist

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"os"
)

const defaultDataFile = "data/todolist.json"
const defaultLogLevel = "info"

type Config struct {
	DataFile     string   `yaml:"data_file"`
	Log          bool     `yaml:"log"`
	LogLevel     string   `yaml:"log_level"`
	DeclaredTags []string `yaml:"declared_tags"`
	MaxFileSize  int64    `yaml:"max_file_size"`
	AtomicWrites bool     `yaml:"atomic_writes"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.Wrap(ErrPrecondition, "config path is required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "could not read config %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(ErrParse, "could not parse config %s: %v", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DataFile == "" {
		cfg.DataFile = defaultDataFile
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

func (cfg *Config) logger() (*zap.Logger, error) {
	if !cfg.Log {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(ErrPrecondition, "invalid log level %q", cfg.LogLevel)
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	l, err := zapCfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "could not build logger")
	}

	return l, nil
}
