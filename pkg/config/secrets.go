package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.yaml.in/yaml/v4"
)

// SecretSource is one place a credential may live.
type SecretSource interface {
	Name() string
	Lookup(key string) (string, bool, error)
}

// ResolveCredential returns the value of key from the first source that has
// it, along with that source's name. The value is used as-is: a source that
// holds the key with an empty value ends the search and yields no credential.
// Not finding the key anywhere yields an empty value and no error.
func ResolveCredential(key string, sources ...SecretSource) (value, source string, err error) {
	for _, s := range sources {
		v, ok, lerr := s.Lookup(key)
		if lerr != nil {
			return "", "", fmt.Errorf("%s: %w", s.Name(), lerr)
		}
		if !ok {
			continue
		}
		if v == "" {
			return "", "", nil
		}
		return v, s.Name(), nil
	}
	return "", "", nil
}

// FileSecrets is the platform secret store: a flat YAML mapping of
// KEY: value pairs. A missing file behaves like an empty store.
type FileSecrets struct {
	path string

	once   sync.Once
	values map[string]string
	err    error
}

func NewFileSecrets(path string) *FileSecrets {
	return &FileSecrets{path: path}
}

func (f *FileSecrets) Name() string { return "secrets" }

func (f *FileSecrets) Lookup(key string) (string, bool, error) {
	f.once.Do(f.load)
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FileSecrets) load() {
	f.values = map[string]string{}
	if f.path == "" {
		return
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		f.err = fmt.Errorf("read secrets file: %w", err)
		return
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		f.err = fmt.Errorf("parse secrets file %s: %w", f.path, err)
		return
	}
	for k, v := range raw {
		if v == nil {
			continue
		}
		f.values[k] = fmt.Sprint(v)
	}
}

// EnvSecrets reads the process environment.
type EnvSecrets struct{}

func (EnvSecrets) Name() string { return "env" }

func (EnvSecrets) Lookup(key string) (string, bool, error) {
	v, ok := os.LookupEnv(key)
	return v, ok, nil
}
