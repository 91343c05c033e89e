// Package config reads the needle configuration file.
//
// The file is TOML:
//
//	max_alternatives = 256
//	format = "yaml"
//	db = "/var/cache/needle.db"
//	log = "/tmp/needle.log"
//
// Every key is optional. Command-line flags take precedence over the file.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Config keeps the settings that can come from the configuration file.
type Config struct {
	// Row limit for alternated substrings; 0 means the library default and a
	// negative value means no limit.
	MaxAlternatives int `toml:"max_alternatives"`
	// Output format; empty means chosen from the output device.
	Format string `toml:"format"`
	// Path of the result store; empty means no store.
	DB string `toml:"db"`
	// Path of the debug log; empty means no log.
	Log string `toml:"log"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{}
}

// Load reads the named file on top of Default. Unknown keys are an error.
func Load(fname string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(fname, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", fname, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", fname, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", fname, err)
	}
	return c, nil
}

// Validate checks the values of c.
func (c Config) Validate() error {
	if c.Format != "" && !IsFormat(c.Format) {
		return fmt.Errorf("unknown format %q, want one of %s", c.Format, strings.Join(Formats, ", "))
	}
	return nil
}

// IsFormat reports whether name is a supported output format.
func IsFormat(name string) bool {
	return slices.Contains(Formats, name)
}
