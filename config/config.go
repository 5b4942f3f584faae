package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kestrel-go/kestrel"
)

// Sort order names accepted in configuration files.
const (
	OrderLowToHigh = "low-to-high"
	OrderHighToLow = "high-to-low"
)

// Sentinel errors for the config package.
var (
	// ErrUnknownFormat is returned for file extensions other than
	// .toml, .yaml and .yml.
	ErrUnknownFormat = errors.New("config format must be TOML or YAML")

	// ErrUnknownSortOrder is returned for sort_order values other than
	// "low-to-high" and "high-to-low".
	ErrUnknownSortOrder = errors.New(`sort_order must be "low-to-high" or "high-to-low"`)
)

// Settings contains the dispatcher knobs a configuration file may set.
type Settings struct {
	// SortOrder is "low-to-high" (default) or "high-to-low".
	SortOrder string `toml:"sort_order" yaml:"sort_order"`

	// StopOnFalse enables the stop-on-false dispatch rule.
	StopOnFalse bool `toml:"stop_on_false" yaml:"stop_on_false"`

	// DefaultPriority is assigned to listeners registered without an
	// explicit priority.
	DefaultPriority int `toml:"default_priority" yaml:"default_priority"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		SortOrder:       OrderLowToHigh,
		DefaultPriority: kestrel.DefaultPriority,
	}
}

// Order maps the configured sort order name to the dispatcher value.
func (s Settings) Order() (kestrel.SortOrder, error) {
	switch s.SortOrder {
	case OrderLowToHigh, "":
		return kestrel.LowToHigh, nil
	case OrderHighToLow:
		return kestrel.HighToLow, nil
	default:
		return kestrel.LowToHigh, fmt.Errorf("%w: %q", ErrUnknownSortOrder, s.SortOrder)
	}
}

// Options converts the settings into construction options for kestrel.New.
// An unknown sort order falls back to the default ordering.
func (s Settings) Options() []kestrel.Option {
	order, err := s.Order()
	if err != nil {
		order = kestrel.LowToHigh
	}
	return []kestrel.Option{
		kestrel.WithSortOrder(order),
		kestrel.WithStopOnFalse(s.StopOnFalse),
		kestrel.WithDefaultPriority(s.DefaultPriority),
	}
}

// Apply pushes the settings onto an existing dispatcher. Used for live
// reload; registered listeners are untouched.
func (s Settings) Apply(d *kestrel.Dispatcher) error {
	order, err := s.Order()
	if err != nil {
		return err
	}
	if err := d.SetSortOrder(order); err != nil {
		return err
	}
	d.SetStopOnFalse(s.StopOnFalse)
	d.SetDefaultPriority(s.DefaultPriority)
	return nil
}

// Load reads settings from the file at path, dispatching on the file
// extension. A missing file yields the defaults without error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadReader reads settings of the given format ("toml", "yaml") from r.
func LoadReader(r io.Reader, format string) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Default(), fmt.Errorf("reading config: %w", err)
	}
	return parse("config."+format, data)
}

func parse(path string, data []byte) (Settings, error) {
	s := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Default(), fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Default(), fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return Default(), fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if _, err := s.Order(); err != nil {
		return Default(), err
	}
	return s, nil
}
