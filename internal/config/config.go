// Package config loads runtime settings for htcrack.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file named by --config.
//  3. Command-line flags that were explicitly set.
//
// JSON example:
//
//	{
//	  "store_path": "users.db",
//	  "table_path": "table.db",
//	  "charset": "default",
//	  "table_length": 6,
//	  "min_length": 4,
//	  "max_length": 8,
//	  "workers": 8,
//	  "chunk_mib": 2048,
//	  "log_level": "info"
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

type Config struct {
	StorePath   string `json:"store_path"`
	TablePath   string `json:"table_path"`
	Charset     string `json:"charset"`
	TableLength int    `json:"table_length"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
	Workers     int    `json:"workers"`
	ChunkMiB    int64  `json:"chunk_mib"`
	LogLevel    string `json:"log_level"`
}

// LoadDefaults populates c with the settings the tool ships with.
func (c *Config) LoadDefaults() {
	c.StorePath = "users.db"
	c.TablePath = "table.db"
	c.Charset = "default"
	c.TableLength = 6
	c.MinLength = 4
	c.MaxLength = 8
	c.Workers = runtime.NumCPU()
	c.ChunkMiB = 2048
	c.LogLevel = "info"
}

func Default() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// LoadJSON overlays c with the fields present in the JSON file at path.
func (c *Config) LoadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ChunkBytes is the table window size in bytes.
func (c *Config) ChunkBytes() int64 {
	return c.ChunkMiB << 20
}

func (c *Config) Validate() error {
	switch {
	case c.StorePath == "":
		return fmt.Errorf("config: store path is empty")
	case c.TablePath == "":
		return fmt.Errorf("config: table path is empty")
	case c.TableLength < 1:
		return fmt.Errorf("config: table length must be at least 1, got %d", c.TableLength)
	case c.MinLength < 1 || c.MaxLength < c.MinLength:
		return fmt.Errorf("config: invalid length range %d-%d", c.MinLength, c.MaxLength)
	case c.ChunkMiB < 1:
		return fmt.Errorf("config: chunk size must be at least 1 MiB, got %d", c.ChunkMiB)
	}
	return nil
}

// ParseRange parses "4-8" or a single number "6" into an inclusive range.
func ParseRange(s string) (min, max int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("length range %q: expected at most two numbers, got %d", s, len(parts))
	}

	min, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("length range %q: %w", s, err)
	}
	max = min
	if len(parts) == 2 {
		max, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("length range %q: %w", s, err)
		}
	}

	if min < 1 || max < 1 {
		return 0, 0, fmt.Errorf("length range %q: lengths must be positive", s)
	}
	if max < min {
		return 0, 0, fmt.Errorf("length range %q: max below min", s)
	}
	return min, max, nil
}
