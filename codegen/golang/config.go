package golang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/entrygen-xyz/go-entrygen/ident"
)

// TrustLevel selects how generated transition methods treat the invariant
// that a handle matches the container's current state.
type TrustLevel int

const (
	// TrustChecked verifies the tag on every transition and panics with a
	// diagnostic on mismatch. This is the default.
	TrustChecked TrustLevel = iota
	// TrustTotal elides the check. The caller asserts, out of band, that a
	// mismatch cannot occur; a violated assertion silently corrupts state.
	TrustTotal
)

func (t TrustLevel) String() string {
	if t == TrustTotal {
		return "total"
	}
	return "checked"
}

// Config controls code generation. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// Package is the package clause of the emitted file, the target
	// namespace the machine lives in.
	Package string
	// Name is the container type name.
	Name string
	// Entry is the entry type name. Empty means <Name>Entry. Go visibility
	// is carried by the identifier's case; the entry method is named Entry
	// or entry to match.
	Entry string
	// RenameMethods derives transition method names from the destination
	// node via snake_case conversion. When false the destination name is
	// used verbatim. Consumed by the graph builder.
	RenameMethods bool
	// Trust selects checked or unchecked transition methods.
	Trust TrustLevel
	// Mermaid embeds a mermaid diagram of the graph in the entry docs.
	Mermaid bool
	// Imports are import paths resolving the package qualifiers that appear
	// in payload types. A qualifier with no matching entry is assumed to be
	// a standard library package of the same name (time, bytes, ...).
	Imports []string

	// Doc is the machine-level documentation placed on the container.
	Doc []string
	// SVG is pre-rendered diagram markup attached below the container docs.
	SVG string
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Package:       "fsm",
		Name:          "Machine",
		RenameMethods: true,
	}
}

func (c *Config) entryName() string {
	if c.Entry != "" {
		return c.Entry
	}
	return c.Name + "Entry"
}

func (c *Config) validate() error {
	if !ident.Valid(c.Package) {
		return fmt.Errorf("invalid package name %q", c.Package)
	}
	if !ident.Valid(c.Name) {
		return fmt.Errorf("invalid container name %q", c.Name)
	}
	if !ident.Valid(c.entryName()) {
		return fmt.Errorf("invalid entry name %q", c.Entry)
	}
	return nil
}

// ParseOption sets one recognized option from its key=value form. The option
// set is fixed and small, so this is a plain scan rather than anything
// extensible.
func ParseOption(cfg *Config, key, value string) error {
	switch key {
	case "name":
		cfg.Name = value
	case "entry":
		cfg.Entry = value
	case "package", "path_to_core":
		cfg.Package = value
	case "rename_methods":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", key, err)
		}
		cfg.RenameMethods = v
	case "unsafe":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", key, err)
		}
		cfg.Trust = TrustChecked
		if v {
			cfg.Trust = TrustTotal
		}
	case "mermaid":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", key, err)
		}
		cfg.Mermaid = v
	case "import":
		cfg.Imports = append(cfg.Imports, value)
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	return nil
}

// ParseOptions applies a list of key=value pairs to cfg.
func ParseOptions(cfg *Config, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("option %q is not of the form key=value", pair)
		}
		if err := ParseOption(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}
