// Package settings provides a viper-backed reader for persisted user
// settings, exposing the narrow get-or-default interface the chatstream
// session consumes.
package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store reads configuration from a YAML file plus WORDPECKER_* environment
// variables. Environment variables override the file.
type Store struct {
	v *viper.Viper
}

// Open loads the store. With an empty path it searches the standard
// locations: $WORDPECKER_CONFIG, ./wordpecker.yaml, then
// ~/.config/wordpecker/wordpecker.yaml. A missing file is not an error; the
// store then serves defaults only.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("wordpecker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("WORDPECKER_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wordpecker")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wordpecker"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return &Store{v: v}, nil
}

// Get returns the stored value for key, or def when the key is unset.
func (s *Store) Get(key, def string) string {
	if s.v.IsSet(key) {
		if value := s.v.GetString(key); value != "" {
			return value
		}
	}
	return def
}

// Set records a value in memory. It does not persist until Save.
func (s *Store) Set(key, value string) {
	s.v.Set(key, value)
}

// Save writes the current values back to the given file.
func (s *Store) Save(path string) error {
	return s.v.WriteConfigAs(path)
}
