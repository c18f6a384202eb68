package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the configuration file.
type Config struct {
	Grammar string `yaml:"grammar"`
	Trace   string `yaml:"trace"`
	Format  string `yaml:"format"`
	Workers int    `yaml:"workers"`
}

// Output formats
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func defaultConfig() *Config {
	return &Config{
		Trace:   "Error",
		Format:  FormatTree,
		Workers: runtime.NumCPU(),
	}
}

const configName = ".cmdsyn.yaml"

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName), nil
}

// LoadConfig reads a configuration file. If path is empty, ~/.cmdsyn.yaml is
// tried. A missing default file is not an error; an explicitly named file has
// to exist. Values not set in the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	conf := defaultConfig()
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return conf, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return conf, nil
		}
		return nil, err
	}
	if err = yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err = conf.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return conf, nil
}

func (conf *Config) validate() error {
	conf.Format = strings.ToLower(conf.Format)
	switch conf.Format {
	case FormatTree, FormatJSON, FormatYAML:
	case "":
		conf.Format = FormatTree
	default:
		return fmt.Errorf("unknown output format %q", conf.Format)
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.NumCPU()
	}
	return nil
}
