package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	FlagConfig   = "config"
	FlagStore    = "store"
	FlagTable    = "table"
	FlagCharset  = "charset"
	FlagLength   = "length"
	FlagLengths  = "lengths"
	FlagWorkers  = "workers"
	FlagChunkMiB = "chunk-mib"
	FlagLogLevel = "log-level"
)

// RegisterFlags adds every setting to fs, with the built-in defaults shown
// in help output.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String(FlagConfig, "", "JSON config file")
	fs.String(FlagStore, d.StorePath, "credential store file")
	fs.String(FlagTable, d.TablePath, "hash table file")
	fs.StringP(FlagCharset, "c", d.Charset, "character set: default, lower, upper, digits, alpha, alnum, special, all, or a literal alphabet")
	fs.IntP(FlagLength, "l", d.TableLength, "candidate length for gen-htable")
	fs.String(FlagLengths, fmt.Sprintf("%d-%d", d.MinLength, d.MaxLength), "candidate length range for bruteforce, e.g. 4-8")
	fs.IntP(FlagWorkers, "t", d.Workers, "number of worker goroutines")
	fs.Int64(FlagChunkMiB, d.ChunkMiB, "table window size in MiB")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
}

// ApplyFlags copies the flags that were explicitly set on fs into c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil {
			return
		}
		if f := fs.Lookup(name); f != nil && f.Changed {
			err = apply()
		}
	}

	set(FlagStore, func() (e error) { c.StorePath, e = fs.GetString(FlagStore); return })
	set(FlagTable, func() (e error) { c.TablePath, e = fs.GetString(FlagTable); return })
	set(FlagCharset, func() (e error) { c.Charset, e = fs.GetString(FlagCharset); return })
	set(FlagLength, func() (e error) { c.TableLength, e = fs.GetInt(FlagLength); return })
	set(FlagWorkers, func() (e error) { c.Workers, e = fs.GetInt(FlagWorkers); return })
	set(FlagChunkMiB, func() (e error) { c.ChunkMiB, e = fs.GetInt64(FlagChunkMiB); return })
	set(FlagLogLevel, func() (e error) { c.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagLengths, func() error {
		s, e := fs.GetString(FlagLengths)
		if e != nil {
			return e
		}
		c.MinLength, c.MaxLength, e = ParseRange(s)
		return e
	})
	return err
}

// Load builds a Config from defaults, the --config JSON file if given, and
// the flags explicitly set on fs.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	if path, _ := fs.GetString(FlagConfig); path != "" {
		if err := cfg.LoadJSON(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
