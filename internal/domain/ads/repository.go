package ads

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Search scopes for the list endpoint. "creator" and "advertiser" restrict
// the substring match to the page name; "keyword" (the default) also
// searches the creative text.
const (
	SearchTypeKeyword    = "keyword"
	SearchTypeCreator    = "creator"
	SearchTypeAdvertiser = "advertiser"
)

// Filters are the validated list parameters. Limit and Offset are assumed
// to be sanitized by the caller; SortBy and Order are coerced against an
// allow-list here, never interpolated as given.
type Filters struct {
	Status     string
	MinScore   *float64
	Search     string
	SearchType string
	SortBy     string
	Order      string
	Limit      int
	Offset     int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// upsertColumns is every column replaced on conflict. id and created_at are
// deliberately absent: the id is the conflict key and created_at keeps the
// first-insert value.
var upsertColumns = []string{
	"ad_creative_bodies",
	"ad_creative_link_captions",
	"ad_creative_link_titles",
	"ad_creative_link_descriptions",
	"ad_delivery_start_time",
	"ad_delivery_stop_time",
	"ad_snapshot_url",
	"age_country_gender_reach_breakdown",
	"bylines",
	"currency",
	"demographic_distribution",
	"estimated_audience_size",
	"impressions",
	"languages",
	"page_id",
	"page_name",
	"publisher_platforms",
	"spend",
	"target_ages",
	"target_gender",
	"target_locations",
	"ad_status",
	"performance_score",
	"engagement_rate",
	"media_type",
	"images",
	"videos",
	"landing_page_url",
	"updated_at",
}

// Upsert inserts the ad or replaces the existing row with the same id.
// created_at survives re-ingestion, updated_at is bumped on every call.
func (r *Repository) Upsert(ctx context.Context, ad *Ad) error {
	now := time.Now().UTC()
	ad.UpdatedAt = now
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = now
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(ad).Error
}

// List returns one page of ads matching the filters plus the total match
// count before pagination.
func (r *Repository) List(ctx context.Context, f Filters) ([]Ad, int64, error) {
	ads := make([]Ad, 0)
	var total int64

	q := r.db.WithContext(ctx).Model(&Ad{})

	if f.Status != "" {
		q = q.Where("ad_status = ?", f.Status)
	}

	if f.MinScore != nil {
		q = q.Where("performance_score >= ?", *f.MinScore)
	}

	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		pattern := "%" + s + "%"
		switch f.SearchType {
		case SearchTypeCreator, SearchTypeAdvertiser:
			q = q.Where("LOWER(page_name) LIKE ?", pattern)
		default:
			// Creative lists are stored as JSON text, so LIKE over the
			// serialized column is a substring match across all variants.
			q = q.Where(
				"LOWER(page_name) LIKE ? OR LOWER(ad_creative_bodies) LIKE ? OR LOWER(ad_creative_link_titles) LIKE ?",
				pattern, pattern, pattern,
			)
		}
	}

	// Sorting (allow-list; anything else falls back to performance_score)
	order := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		order = "ASC"
	}

	sortBy := "performance_score"
	switch f.SortBy {
	case "performance_score", "ad_delivery_start_time", "page_name", "engagement_rate":
		sortBy = f.SortBy
	}

	q = q.Order(sortBy + " " + order)

	// Clone before counting so Count does not mutate the paged query.
	countQuery := q.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Limit(f.Limit).Offset(f.Offset).Find(&ads).Error
	return ads, total, err
}

// GetByID fetches one ad. gorm.ErrRecordNotFound passes through for the
// handler to map to 404.
func (r *Repository) GetByID(ctx context.Context, id string) (*Ad, error) {
	var ad Ad
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// Overview is the dashboard-wide aggregate row.
type Overview struct {
	TotalAds            int64   `json:"total_ads"`
	ActiveAds           int64   `json:"active_ads"`
	InactiveAds         int64   `json:"inactive_ads"`
	AvgPerformanceScore float64 `json:"avg_performance_score"`
	UniqueAdvertisers   int64   `json:"unique_advertisers"`
}

// TopPerformer is one advertiser ranked by average score.
type TopPerformer struct {
	PageName string  `json:"page_name"`
	AdCount  int64   `json:"ad_count"`
	AvgScore float64 `json:"avg_score"`
}

// Stats computes the overview aggregates and the top ten advertisers by
// average performance score.
func (r *Repository) Stats(ctx context.Context) (*Overview, []TopPerformer, error) {
	var overview Overview
	err := r.db.WithContext(ctx).Model(&Ad{}).
		Select(
			"COUNT(*) AS total_ads, " +
				"COUNT(CASE WHEN ad_status = 'ACTIVE' THEN 1 END) AS active_ads, " +
				"COUNT(CASE WHEN ad_status = 'INACTIVE' THEN 1 END) AS inactive_ads, " +
				"COALESCE(AVG(performance_score), 0) AS avg_performance_score, " +
				"COUNT(DISTINCT page_name) AS unique_advertisers",
		).
		Scan(&overview).Error
	if err != nil {
		return nil, nil, err
	}

	topPerformers := make([]TopPerformer, 0)
	err = r.db.WithContext(ctx).Model(&Ad{}).
		Select("page_name, COUNT(*) AS ad_count, AVG(performance_score) AS avg_score").
		Group("page_name").
		Order("avg_score DESC").
		Limit(10).
		Scan(&topPerformers).Error
	if err != nil {
		return nil, nil, err
	}

	return &overview, topPerformers, nil
}
