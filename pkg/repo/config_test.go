package repo

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/plumbing-vcs/plumb/pkg/object"
)

func TestConfigRoundTrip(t *testing.T) {
	r := tempRepo(t)

	want := &Config{
		User: UserConfig{
			Name:       "Ada",
			Email:      "ada@example.com",
			SigningKey: "/home/ada/.ssh/id_ed25519",
		},
		Core: CoreConfig{Compression: 19},
	}
	if err := r.WriteConfig(want); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	got, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if *got != *want {
		t.Errorf("config: got %+v, want %+v", got, want)
	}
}

func TestConfigMissingFileYieldsEmpty(t *testing.T) {
	r := tempRepo(t)
	if err := os.Remove(r.configPath()); err != nil {
		t.Fatalf("remove config: %v", err)
	}
	cfg, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("config: got %+v, want empty", cfg)
	}
}

func TestConfigFileIsTOML(t *testing.T) {
	r := tempRepo(t)
	cfg := &Config{
		User: UserConfig{Name: "Ada", Email: "ada@example.com"},
		Core: CoreConfig{Compression: 3},
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	data, err := os.ReadFile(r.configPath())
	if err != nil {
		t.Fatalf("read config file: %v", err)
	}
	for _, table := range []string{"[user]", "[core]"} {
		if !strings.Contains(string(data), table) {
			t.Errorf("config file missing %s table:\n%s", table, data)
		}
	}
}

func TestConfigIdentity(t *testing.T) {
	cfg := &Config{User: UserConfig{Name: "Ada", Email: "ada@example.com"}}
	sig, err := cfg.Identity(1234)
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	want := object.Signature{Name: "Ada", Email: "ada@example.com", When: 1234}
	if sig != want {
		t.Errorf("Identity: got %+v, want %+v", sig, want)
	}

	if _, err := (&Config{}).Identity(1234); !errors.Is(err, object.ErrInvalidArgument) {
		t.Errorf("Identity without user: got %v", err)
	}
}
