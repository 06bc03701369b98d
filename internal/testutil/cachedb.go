package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/rkoski/bookdex/internal/cache"
)

// SetupCacheDB points the global response cache at a throwaway SQLite file
// and tears it down when the test completes.
func SetupCacheDB(t *testing.T) {
	t.Helper()

	viper.Set("cache.dbfile", filepath.Join(t.TempDir(), "cache.db"))
	viper.Set("cache.ttl", "1h")
	require.NoError(t, cache.ResetGlobal())

	t.Cleanup(func() {
		_ = cache.ResetGlobal()
		viper.Set("cache.dbfile", "")
		viper.Set("cache.ttl", "")
	})
}
