package ingest

import (
	"context"
	"log"
	"time"
)

// Auto-sync batches are smaller than manual ones; the scraper has usage
// limits and the scheduler runs unattended.
const autoSyncMaxAds = 50

// StartScheduler launches a background goroutine syncing every interval
// until ctx is cancelled. Scheduled runs may overlap a manual sync; upserts
// are idempotent, so a concurrent pair is merely wasteful, never unsafe.
func (s *Service) StartScheduler(ctx context.Context, interval time.Duration) {
	log.Printf("auto-sync enabled, running every %s", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("auto-sync stopped")
				return
			case <-ticker.C:
				if _, err := s.Sync(ctx, "", defaultCountry, autoSyncMaxAds); err != nil {
					log.Printf("scheduled sync failed: %v", err)
				}
			}
		}
	}()
}
