package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/admpub/json5"
)

type Config struct {
	Listen  string `json:"listen"`
	Storage string `json:"storage"`          // memory:// or duckdb://path
	Content string `json:"content"`          // site YAML; empty uses the embedded site
	Static  string `json:"static,omitempty"` // directory served under /static/
	GeoIPDB string `json:"geoip,omitempty"`  // MaxMind database for visitor countries
	Theme   string `json:"theme,omitempty"`  // echarts theme
	Watch   bool   `json:"watch,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

func (c *Config) SetDefaults() {
	if len(c.Listen) == 0 {
		c.Listen = `:8080`
	}
	if len(c.Storage) == 0 {
		c.Storage = `memory://`
	}
	if len(c.Theme) == 0 {
		c.Theme = `westeros`
	}
}

// LoadConfig reads a JSON5 config file. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	var config Config
	jsonFile, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			config.SetDefaults()
			return config, nil
		}
		return Config{}, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return Config{}, err
	}

	if err := json5.Unmarshal(byteValue, &config); err != nil {
		return Config{}, fmt.Errorf(`unable to parse %s: %w`, path, err)
	}
	config.SetDefaults()
	return config, nil
}
