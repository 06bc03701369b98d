// Package testutil provides shared helpers for tests that touch global
// configuration or the response cache.
package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/rkoski/bookdex/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	CatalogAPIKey  string
	CatalogBaseURL string
	MaxResults     int
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		CatalogAPIKey:  config.CatalogAPIKey,
		CatalogBaseURL: config.CatalogBaseURL,
		MaxResults:     config.MaxResults,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.CatalogAPIKey = state.CatalogAPIKey
	config.CatalogBaseURL = state.CatalogBaseURL
	config.MaxResults = state.MaxResults
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
