// Package config loads the board settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "INKBOARD_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Geometry Geometry `toml:"geometry"`
	Board    Board    `toml:"board"`
	Network  Network  `toml:"network"`
	Log      Log      `toml:"log"`
	Export   Export   `toml:"export"`
}

type Geometry struct {
	// RadiusScale converts pressure into circle radius.
	RadiusScale float64 `toml:"radius_scale"`
	// Pressure is reported for pointers that have no pressure sensor.
	Pressure         float64 `toml:"pressure"`
	FlattenTolerance float64 `toml:"flatten_tolerance"`
}

type Board struct {
	Color  string  `toml:"color"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Network struct {
	Port      int    `toml:"port"`
	Service   string `toml:"service"`
	Advertise bool   `toml:"advertise"`
}

type Log struct {
	Level string `toml:"level"`
}

type Export struct {
	// Margin around the drawing in PDF points.
	Margin float64 `toml:"margin"`
}

func Default() Config {
	return Config{
		Geometry: Geometry{RadiusScale: 20, Pressure: 0.5, FlattenTolerance: 0.25},
		Board:    Board{Color: "black", Width: 1024, Height: 768},
		Network:  Network{Port: 8888, Service: "_inkboard._tcp", Advertise: true},
		Log:      Log{Level: "info"},
		Export:   Export{Margin: 20},
	}
}

// Parse decodes data over the defaults. Keys that do not map to a field are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by EnvPath, if any.
func FromEnv() (Config, error) {
	return Load(os.Getenv(EnvPath))
}

func (c Config) Validate() error {
	switch {
	case c.Geometry.RadiusScale <= 0:
		return fmt.Errorf("%w: geometry.radius_scale must be positive", ErrInvalid)
	case c.Geometry.Pressure < 0:
		return fmt.Errorf("%w: geometry.pressure must not be negative", ErrInvalid)
	case c.Geometry.FlattenTolerance <= 0:
		return fmt.Errorf("%w: geometry.flatten_tolerance must be positive", ErrInvalid)
	case c.Board.Color == "":
		return fmt.Errorf("%w: board.color is empty", ErrInvalid)
	case c.Board.Width <= 0 || c.Board.Height <= 0:
		return fmt.Errorf("%w: board size %vx%v", ErrInvalid, c.Board.Width, c.Board.Height)
	case c.Network.Port <= 0 || c.Network.Port > 65535:
		return fmt.Errorf("%w: network.port %d out of range", ErrInvalid, c.Network.Port)
	case c.Network.Service == "":
		return fmt.Errorf("%w: network.service is empty", ErrInvalid)
	case c.Export.Margin < 0:
		return fmt.Errorf("%w: export.margin must not be negative", ErrInvalid)
	}
	return nil
}
