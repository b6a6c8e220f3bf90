package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultSchemaPath is where Prisma keeps the schema by convention.
const DefaultSchemaPath = "prisma/schema.prisma"

// FileNames are the project config files looked up in a directory, in order.
var FileNames = []string{"prisma-uml.yml", "prisma-uml.yaml", "prisma-uml.toml"}

// ErrNotFound is returned by Find when no config file exists.
var ErrNotFound = errors.New("no prisma-uml config file found")

// Config holds all settings for diagram generation.
type Config struct {
	Schema            string `yaml:"schema" toml:"schema"`
	Output            string `yaml:"output" toml:"output"` // empty means stdout
	FullRelationLinks bool   `yaml:"fullRelationLinks" toml:"fullRelationLinks"`
	Notation          string `yaml:"notation" toml:"notation"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Schema:   DefaultSchemaPath,
		Notation: "multiplicity",
	}
}

// Find returns the first config file present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Load reads a YAML or TOML config file on top of the defaults.
// The format is picked from the file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if strings.HasSuffix(path, ".toml") {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// LoadDir loads the config file from dir, falling back to the defaults
// when there is none.
func LoadDir(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}
