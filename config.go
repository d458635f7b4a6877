package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed data/*
var embeddedFiles embed.FS

var ErrConfig = errors.New("configuration error")

// Config holds everything the labyrinth command needs to generate and save a
// maze. It is assembled from three layers: the defaults embedded in the
// binary (data/config.yaml), an optional configuration file and the command
// line.
type Config struct {
	Out     string
	Seed    *uint64 // nil means a new random seed for every run
	Width   int
	Height  int
	Scale   int
	Record  string
	View    bool
	Verbose bool
}

// configFile is the on-disk form of Config. Every field is optional so that a
// file only overrides the settings it mentions.
type configFile struct {
	Out     *string `yaml:"Out"`
	Seed    *uint64 `yaml:"Seed"`
	Width   *int    `yaml:"Width"`
	Height  *int    `yaml:"Height"`
	Scale   *int    `yaml:"Scale"`
	Record  *string `yaml:"Record"`
	View    *bool   `yaml:"View"`
	Verbose *bool   `yaml:"Verbose"`
}

func (f *configFile) applyTo(c *Config) {
	if f.Out != nil {
		c.Out = *f.Out
	}
	if f.Seed != nil {
		seed := *f.Seed
		c.Seed = &seed
	}
	if f.Width != nil {
		c.Width = *f.Width
	}
	if f.Height != nil {
		c.Height = *f.Height
	}
	if f.Scale != nil {
		c.Scale = *f.Scale
	}
	if f.Record != nil {
		c.Record = *f.Record
	}
	if f.View != nil {
		c.View = *f.View
	}
	if f.Verbose != nil {
		c.Verbose = *f.Verbose
	}
}

// DefaultConfig returns the configuration embedded in the binary.
func DefaultConfig() Config {
	var c Config
	// The embedded file is part of the build, so failing to read it is a
	// programming error.
	Check(c.Overlay(&embeddedFiles, "data/config.yaml"))
	return c
}

// Overlay reads the YAML file name from fsys and overrides the fields of c
// that the file sets.
func (c *Config) Overlay(fsys FS, name string) error {
	var f configFile
	if err := LoadYAML(fsys, name, &f); err != nil {
		return err
	}
	f.applyTo(c)
	return nil
}

// LoadConfig returns the embedded defaults overridden by the configuration
// file at path. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}

	fsys := os.DirFS(filepath.Dir(path)).(FS)
	if !FileExists(fsys, filepath.Base(path)) {
		return c, fmt.Errorf("%w: configuration file %s does not exist",
			ErrConfig, path)
	}
	if err := c.Overlay(fsys, filepath.Base(path)); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Out == "" {
		return fmt.Errorf("%w: output path is empty", ErrConfig)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: width and height must be at least 1, got %dx%d",
			ErrConfig, c.Width, c.Height)
	}
	if c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("%w: width and height must be at most %d, got %dx%d",
			ErrConfig, MaxDimension, c.Width, c.Height)
	}
	if c.Scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1, got %d",
			ErrConfig, c.Scale)
	}
	return checkArea(c.Width, c.Height, c.Scale)
}
