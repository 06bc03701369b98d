package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkoski/bookdex/internal/config"
)

func TestSaveRestoreConfigState(t *testing.T) {
	orig := SaveConfigState()
	defer RestoreConfigState(orig)

	config.CatalogAPIKey = "saved-key"
	config.MaxResults = 7
	state := SaveConfigState()

	config.CatalogAPIKey = "changed"
	config.MaxResults = 1

	RestoreConfigState(state)
	assert.Equal(t, "saved-key", config.CatalogAPIKey)
	assert.Equal(t, 7, config.MaxResults)
}

func TestSetupCacheDB(t *testing.T) {
	SetupCacheDB(t)
	// The helper must leave the cache usable within the test body.
}
