package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	// BasePathFs rejects every name under a relative base like ".".
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads the configuration from the root of fsys.
func LoadFs(fsys afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fsys, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = fsys
	return &out, nil
}

// Initialize writes the default configuration to the directory. It refuses to
// overwrite an existing configuration.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), path), logger)
}

// InitializeFs writes the default configuration to the root of fsys.
func InitializeFs(fsys afero.Fs, logger *log.Logger) (*Configuration, error) {
	exists, err := afero.Exists(fsys, ConfigurationName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s already exists: %w", ConfigurationName, os.ErrExist)
	}

	logger.Printf("Writing %s\n", ConfigurationName)
	if err := afero.WriteFile(fsys, ConfigurationName, defaultConfigData, 0600); err != nil {
		return nil, err
	}

	return LoadFs(fsys)
}
