package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/plumbing-vcs/plumb/pkg/object"
)

// Config stores repository-local settings in .plumb/config.toml.
type Config struct {
	User UserConfig `toml:"user"`
	Core CoreConfig `toml:"core"`
}

// UserConfig is the committer identity and signing setup.
type UserConfig struct {
	Name       string `toml:"name,omitempty"`
	Email      string `toml:"email,omitempty"`
	SigningKey string `toml:"signingkey,omitempty"` // path to an OpenSSH private key
}

// CoreConfig tunes the object store.
type CoreConfig struct {
	// Compression is the zstd level for loose-object files, 1 (fastest)
	// through 22 (smallest). Zero keeps the default level.
	Compression int `toml:"compression,omitempty"`
}

func (r *Repository) configPath() string {
	return filepath.Join(r.PlumbDir, "config.toml")
}

// ReadConfig reads .plumb/config.toml. A missing file yields an empty
// config.
func (r *Repository) ReadConfig() (*Config, error) {
	data, err := os.ReadFile(r.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("read config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// WriteConfig atomically writes .plumb/config.toml.
func (r *Repository) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(r.PlumbDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// Identity returns the configured user as a signature stamped with
// when. It fails when no identity is configured.
func (c *Config) Identity(when int64) (object.Signature, error) {
	if c.User.Name == "" || c.User.Email == "" {
		return object.Signature{}, fmt.Errorf("no user identity configured: %w", object.ErrInvalidArgument)
	}
	return object.Signature{Name: c.User.Name, Email: c.User.Email, When: when}, nil
}
