package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eepyfemboi/css-resolver/filewriter"
)

const ConfigFileName = "css-resolver.yml"

// Config holds defaults loadable from a YAML config file. Explicit
// command line flags take precedence over config file values.
type Config struct {
	UserAgent string                     `yaml:"useragent"`
	Headers   map[string]string          `yaml:"headers"`
	Timeout   string                     `yaml:"timeout"`
	MaxDepth  int                        `yaml:"maxdepth"`
	Filter    string                     `yaml:"filter"`
	LogFile   string                     `yaml:"logfile"`
	Compress  *filewriter.CompressConfig `yaml:"compress"`
}

// readConfig loads the config from filename. When filename is empty,
// the default config file is read if present and an empty config is
// returned otherwise; an explicitly named file must exist.
func readConfig(filename string) (*Config, error) {
	explicit := filename != ""
	if !explicit {
		filename = ConfigFileName
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%s: %v", filename, err)
	}
	return &c, nil
}

// timeout parses the config timeout value ("30s", "2m") if present.
func (c *Config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config timeout: %v", err)
	}
	return d, nil
}
