package ads

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Ad statuses. INACTIVE is derived: an ad with a delivery stop time is no
// longer running.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Media types, richest creative wins during classification.
const (
	MediaTypeText  = "text"
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Ad is the canonical, normalized advertisement record. One row per
// external ad id; re-ingestion of the same id replaces the row.
//
// Metric fields (impressions, spend, estimated_audience_size) keep the
// source's encoding verbatim: a plain number, a "min-max" range, or the
// JSON text of a structured value. The breakdown columns keep whatever
// JSON the source disclosed.
type Ad struct {
	ID                         string         `json:"id" gorm:"primaryKey"`
	AdCreativeBodies           []string       `json:"ad_creative_bodies" gorm:"serializer:json"`
	AdCreativeLinkCaptions     []string       `json:"ad_creative_link_captions" gorm:"serializer:json"`
	AdCreativeLinkTitles       []string       `json:"ad_creative_link_titles" gorm:"serializer:json"`
	AdCreativeLinkDescriptions []string       `json:"ad_creative_link_descriptions" gorm:"serializer:json"`
	AdDeliveryStartTime        string         `json:"ad_delivery_start_time" gorm:"index"`
	AdDeliveryStopTime         string         `json:"ad_delivery_stop_time"`
	AdSnapshotURL              string         `json:"ad_snapshot_url"`
	ReachBreakdown             datatypes.JSON `json:"age_country_gender_reach_breakdown" gorm:"column:age_country_gender_reach_breakdown"`
	Bylines                    string         `json:"bylines"`
	Currency                   string         `json:"currency"`
	DemographicDistribution    datatypes.JSON `json:"demographic_distribution"`
	EstimatedAudienceSize      string         `json:"estimated_audience_size"`
	Impressions                string         `json:"impressions"`
	Languages                  []string       `json:"languages" gorm:"serializer:json"`
	PageID                     string         `json:"page_id"`
	PageName                   string         `json:"page_name" gorm:"index"`
	PublisherPlatforms         []string       `json:"publisher_platforms" gorm:"serializer:json"`
	Spend                      string         `json:"spend"`
	TargetAges                 string         `json:"target_ages"`
	TargetGender               string         `json:"target_gender"`
	TargetLocations            []string       `json:"target_locations" gorm:"serializer:json"`
	AdStatus                   string         `json:"ad_status" gorm:"index"`
	PerformanceScore           float64        `json:"performance_score" gorm:"index"`
	EngagementRate             float64        `json:"engagement_rate"`
	MediaType                  string         `json:"media_type"`
	Images                     []string       `json:"images" gorm:"serializer:json"`
	Videos                     []string       `json:"videos" gorm:"serializer:json"`
	LandingPageURL             string         `json:"landing_page_url"`
	CreatedAt                  time.Time      `json:"created_at"`
	UpdatedAt                  time.Time      `json:"updated_at"`
}

func (Ad) TableName() string {
	return "ads"
}

// ReachBreakdownCount returns the number of disclosed reach-breakdown
// entries. Malformed or non-array breakdown JSON counts as zero.
func (a *Ad) ReachBreakdownCount() int {
	if len(a.ReachBreakdown) == 0 {
		return 0
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(a.ReachBreakdown, &entries); err != nil {
		return 0
	}
	return len(entries)
}

// StatusFor derives the ad status from the delivery stop time.
func StatusFor(stopTime string) string {
	if stopTime != "" {
		return StatusInactive
	}
	return StatusActive
}
