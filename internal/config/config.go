// Package config loads the server's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"truethick/internal/session"
)

// Config represents the complete server configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Worksheet WorksheetConfig `yaml:"worksheet"`
}

type ServerConfig struct {
	Listen            string `yaml:"listen"`
	ShutdownTimeoutMS int    `yaml:"shutdown_timeout_ms"`
}

// WorksheetConfig seeds the live worksheet. Fields are pointers so an
// explicit zero (a due-north azimuth, a zero-grade intercept) survives
// normalization.
type WorksheetConfig struct {
	Mode                  string   `yaml:"mode"`
	HoleAzimuth           *float64 `yaml:"hole_azimuth"`
	HoleDip               *float64 `yaml:"hole_dip"`
	Alpha                 *float64 `yaml:"alpha"`
	Beta                  *float64 `yaml:"beta"`
	StructureDip          *float64 `yaml:"structure_dip"`
	StructureDipDirection *float64 `yaml:"structure_dip_direction"`
	DownholeLength        *float64 `yaml:"downhole_length_m"`
	Grade                 *float64 `yaml:"grade"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

// Load reads and normalizes a YAML configuration file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.ShutdownTimeoutMS <= 0 {
		c.Server.ShutdownTimeoutMS = 5000
	}
	if c.Worksheet.Mode == "" {
		c.Worksheet.Mode = string(session.ModeAlphaBeta)
	}
}

// WorksheetDefaults maps the configuration onto a session worksheet,
// falling back to the standard demo scenario for omitted fields.
func (c *Config) WorksheetDefaults() session.Worksheet {
	ws := session.DefaultWorksheet()
	ws.Mode = session.Mode(c.Worksheet.Mode)

	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&ws.HoleAzimuth, c.Worksheet.HoleAzimuth)
	set(&ws.HoleDip, c.Worksheet.HoleDip)
	set(&ws.Alpha, c.Worksheet.Alpha)
	set(&ws.Beta, c.Worksheet.Beta)
	set(&ws.StructureDip, c.Worksheet.StructureDip)
	set(&ws.StructureDipDirection, c.Worksheet.StructureDipDirection)
	set(&ws.DownholeLength, c.Worksheet.DownholeLength)
	set(&ws.Grade, c.Worksheet.Grade)
	return ws
}
