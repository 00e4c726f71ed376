package mcpsrv

import (
	"context"
	"time"

	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

// RefreshCatalog clears the source cache and reloads the baseline every
// interval until ctx is done. It returns at once for sources without a
// cache or a non-positive interval.
func RefreshCatalog(ctx context.Context, source types.WallpaperSource, catalog *gallery.Catalog, interval time.Duration) {
	clearable, ok := source.(cacheClearSource)
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			clearable.ClearCache()
			items, err := source.GetCatalog(ctx)
			if err != nil {
				logging.Warn("Scheduled catalog reload failed", "error", err)
				continue
			}
			catalog.SetBaseline(items)
			logging.Debug("Catalog reloaded", "items", len(items))
		case <-ctx.Done():
			return
		}
	}
}
