package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "Contract Owner", cfg.OwnerName)
	assert.Equal(t, uint64(DefaultVerificationFee), cfg.VerificationFee)
	assert.Equal(t, uint64(DefaultMintingFee), cfg.MintingFee)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKILLPROOF_ADDR", ":9090")
	t.Setenv("SKILLPROOF_OWNER", "0xadmin")
	t.Setenv("SKILLPROOF_MINTING_FEE", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "0xadmin", cfg.Owner)
	assert.Equal(t, uint64(42), cfg.MintingFee)
	// Untouched keys keep defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsEmptyAddr(t *testing.T) {
	t.Setenv("SKILLPROOF_ADDR", "")

	_, err := Load()
	require.Error(t, err)
}
