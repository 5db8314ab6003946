package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SKILLPROOF_CONFIG is set
//  3. env (prefix SKILLPROOF_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SKILLPROOF_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: SKILLPROOF_ADDR, SKILLPROOF_MINTING_FEE, ...
	// Keys map to the koanf tags on Config, underscores preserved.
	envProvider := env.Provider("SKILLPROOF_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "skillproof_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.Owner == "" {
		return nil, errors.New("owner principal must not be empty")
	}
	if cfg.OwnerName == "" {
		return nil, errors.New("owner name must not be empty")
	}
	return &cfg, nil
}
