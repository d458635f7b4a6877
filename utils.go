package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

func Check(e error) {
	if e != nil {
		panic(e)
	}
}

// LoadYAML reads the YAML file name from fsys into obj. Keys that don't match
// a field of obj are reported as errors, so that typos in a configuration
// file don't go unnoticed.
func LoadYAML(fsys FS, name string, obj any) error {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", ErrIO, name, err)
	}
	if err := yaml.UnmarshalWithOptions(data, obj, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %w", ErrConfig, name, err)
	}
	return nil
}

func FileExists(fsys FS, name string) bool {
	file, err := fsys.Open(name)
	if err == nil {
		Check(file.Close())
		return true
	} else {
		return false
	}
}
