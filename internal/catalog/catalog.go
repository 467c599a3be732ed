// Package catalog provides the static list of installation options and
// their display order. The catalog is read-only at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var embedded []byte

// Option describes a single installable option.
type Option struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	RequiresReboot  bool     `yaml:"requires_reboot"`
	ExcludedFromAll bool     `yaml:"excluded_from_all"` // skipped by "select all"
	Aliases         []string `yaml:"aliases"`           // alternate IDs the install script accepts
}

// Catalog is the full option list plus the category display order.
type Catalog struct {
	Categories []string `yaml:"categories"`
	Options    []Option `yaml:"options"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return parse(embedded)
}

// Load reads a catalog override from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Options) == 0 {
		return nil, fmt.Errorf("catalog has no options")
	}
	return &c, nil
}

// ByID returns the option with the given ID.
func (c *Catalog) ByID(id string) (Option, bool) {
	for _, opt := range c.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// ForAll returns the options included in a bulk "select all".
func (c *Catalog) ForAll() []Option {
	var opts []Option
	for _, opt := range c.Options {
		if !opt.ExcludedFromAll {
			opts = append(opts, opt)
		}
	}
	return opts
}
