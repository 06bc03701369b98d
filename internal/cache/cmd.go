package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// InvalidateCmd represents the cache invalidate subcommand
type InvalidateCmd struct {
	Source string `arg:"" help:"Cache source to invalidate: search, volume" required:""`
}

func (i *InvalidateCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	slog.Info("Invalidating cache", "source", i.Source, "database", cacheDB)

	tables := map[string]string{
		"search": SearchTable,
		"volume": VolumeTable,
	}

	tableName, ok := tables[i.Source]
	if !ok {
		return fmt.Errorf("invalid cache source '%s'; valid sources are: search, volume", i.Source)
	}

	db, err := Global()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	rowsDeleted, err := db.Invalidate(tableName)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "source", i.Source, "rows_deleted", rowsDeleted)
	return nil
}
