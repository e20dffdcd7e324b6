package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"adscope/internal/apify"
	"adscope/internal/domain/ads"
)

const (
	defaultCountry = "US"
	defaultMaxAds  = 100
)

// Source fetches raw records from the external ad-library scraper.
type Source interface {
	FetchAds(ctx context.Context, q apify.SearchQuery) ([]apify.RawAd, error)
}

// Store persists canonical ads keyed by id.
type Store interface {
	Upsert(ctx context.Context, ad *ads.Ad) error
}

// Service is the ingestion pipeline: fetch raw records, normalize, score,
// upsert. A fetch failure aborts the run; a bad record or a failed upsert
// is logged, skipped, and excluded from the returned count.
type Service struct {
	source Source
	store  Store
	scorer *Scorer
}

func NewService(source Source, store Store, scorer *Scorer) *Service {
	if scorer == nil {
		scorer = NewScorer()
	}
	return &Service{source: source, store: store, scorer: scorer}
}

// Sync runs one ingestion pass and returns how many ads were persisted.
// Callers may compare the count against the batch size they requested to
// detect partial failure; which records failed is only in the server log.
func (s *Service) Sync(ctx context.Context, searchTerms, country string, maxAds int) (int, error) {
	if country == "" {
		country = defaultCountry
	}
	if maxAds <= 0 {
		maxAds = defaultMaxAds
	}

	runID := uuid.NewString()
	start := time.Now()
	log.Printf("sync run_id=%s search=%q country=%s max_ads=%d", runID, searchTerms, country, maxAds)

	raws, err := s.source.FetchAds(ctx, apify.SearchQuery{
		SearchTerms: searchTerms,
		Country:     country,
		MaxAds:      maxAds,
	})
	if err != nil {
		return 0, fmt.Errorf("fetch ads: %w", err)
	}
	log.Printf("sync run_id=%s fetched=%d", runID, len(raws))

	saved := 0
	for i, raw := range raws {
		ad := Normalize(raw, i)
		s.scorer.Apply(ad)

		if err := s.store.Upsert(ctx, ad); err != nil {
			log.Printf("sync run_id=%s upsert failed ad_id=%s err=%v", runID, ad.ID, err)
			continue
		}
		saved++
	}

	log.Printf("sync run_id=%s saved=%d skipped=%d duration=%s",
		runID, saved, len(raws)-saved, time.Since(start))

	return saved, nil
}
