package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"adscope/internal/apify"
	"adscope/internal/domain/ads"
)

// The scraper's schema has shifted across actor versions and providers:
// the same field arrives as ad_creative_bodies, adCreativeBodies, body, or
// nested inside a cards[0] composite. Each canonical field probes an
// ordered list of alias paths and takes the first present, non-empty hit.
//
// A path element is either a string key or an int index into an array.
type path []any

var adAliases = map[string][]path{
	"id":                  {{"id"}, {"adid"}, {"adArchiveID"}},
	"bodies":              {{"ad_creative_bodies"}, {"adCreativeBodies"}, {"body"}, {"adCreativeBody"}, {"cards", 0, "body"}},
	"captions":            {{"ad_creative_link_captions"}, {"linkCaption"}, {"cards", 0, "caption"}},
	"titles":              {{"ad_creative_link_titles"}, {"linkTitle"}, {"cards", 0, "title"}},
	"descriptions":        {{"ad_creative_link_descriptions"}, {"linkDescription"}, {"cards", 0, "description"}},
	"start_time":          {{"ad_delivery_start_time"}, {"startDate"}, {"deliveryStartTime"}, {"startedRunningAt"}},
	"stop_time":           {{"ad_delivery_stop_time"}, {"endDate"}, {"deliveryStopTime"}, {"stoppedRunningAt"}},
	"snapshot_url":        {{"ad_snapshot_url"}, {"snapshotUrl"}, {"adSnapshotURL"}},
	"reach_breakdown":     {{"age_country_gender_reach_breakdown"}, {"reachBreakdown"}},
	"bylines":             {{"bylines"}, {"pageName"}, {"advertiserName"}},
	"currency":            {{"currency"}},
	"demographics":        {{"demographic_distribution"}, {"demographics"}},
	"audience_size":       {{"estimated_audience_size"}, {"estimatedAudienceSize"}, {"potentialReach"}},
	"impressions":         {{"impressions"}, {"impressionsLower"}},
	"languages":           {{"languages"}, {"targetLanguages"}},
	"page_id":             {{"page_id"}, {"pageId"}, {"page", "id"}},
	"page_name":           {{"page_name"}, {"pageName"}, {"advertiserName"}, {"page", "name"}},
	"publisher_platforms": {{"publisher_platforms"}, {"platforms"}, {"publisherPlatforms"}},
	"spend":               {{"spend"}, {"spendLower"}},
	"target_ages":         {{"target_ages"}, {"targetAges"}, {"ageRange"}},
	"target_gender":       {{"target_gender"}, {"targetGender"}},
	"target_locations":    {{"target_locations"}, {"targetLocations"}, {"geoTargeting"}},
	"images":              {{"images"}, {"ad_creative_link_image_hashes"}, {"adImages"}, {"imageUrls"}, {"cards", 0, "thumbnail"}, {"snapshot", "images"}},
	"videos":              {{"videos"}, {"videoUrls"}, {"ad_creative_videos"}, {"cards", 0, "video"}, {"snapshot", "videos"}},
	"landing_page_url":    {{"landingPageUrl"}, {"linkUrl"}, {"ad_creative_link_url"}, {"link"}, {"cards", 0, "link"}},
}

// Normalize maps one raw scraper record onto the canonical Ad. It is total:
// every field-level conversion failure substitutes the field's default, and
// an unexpected panic is recovered into a minimal placeholder so a bad
// record never aborts the batch. index disambiguates generated fallback ids
// within one batch.
func Normalize(raw apify.RawAd, index int) (ad *ads.Ad) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("normalize: recovered from panic at record %d: %v", index, recovered)
			ad = placeholderAd(raw, index)
		}
	}()

	ad = &ads.Ad{
		ID:                         probeString(raw, "id", fallbackID(index)),
		AdCreativeBodies:           probeStringList(raw, "bodies"),
		AdCreativeLinkCaptions:     probeStringList(raw, "captions"),
		AdCreativeLinkTitles:       probeStringList(raw, "titles"),
		AdCreativeLinkDescriptions: probeStringList(raw, "descriptions"),
		AdDeliveryStartTime:        probeString(raw, "start_time", ""),
		AdDeliveryStopTime:         probeString(raw, "stop_time", ""),
		AdSnapshotURL:              probeString(raw, "snapshot_url", ""),
		ReachBreakdown:             probeJSON(raw, "reach_breakdown"),
		Bylines:                    probeString(raw, "bylines", ""),
		Currency:                   probeString(raw, "currency", "USD"),
		DemographicDistribution:    probeJSON(raw, "demographics"),
		EstimatedAudienceSize:      probeScalar(raw, "audience_size", ""),
		Impressions:                probeScalar(raw, "impressions", "0"),
		Languages:                  probeStringList(raw, "languages"),
		PageID:                     probeString(raw, "page_id", ""),
		PageName:                   probeString(raw, "page_name", "Unknown"),
		PublisherPlatforms:         probeStringList(raw, "publisher_platforms"),
		Spend:                      probeScalar(raw, "spend", "0"),
		TargetAges:                 probeScalar(raw, "target_ages", ""),
		TargetGender:               probeString(raw, "target_gender", "ALL"),
		TargetLocations:            probeStringList(raw, "target_locations"),
		Images:                     probeStringList(raw, "images"),
		Videos:                     probeStringList(raw, "videos"),
		LandingPageURL:             probeString(raw, "landing_page_url", ""),
	}

	// Richer creative wins: any video makes it a video ad, else any image.
	switch {
	case len(ad.Videos) > 0:
		ad.MediaType = ads.MediaTypeVideo
	case len(ad.Images) > 0:
		ad.MediaType = ads.MediaTypeImage
	default:
		ad.MediaType = ads.MediaTypeText
	}

	ad.AdStatus = ads.StatusFor(ad.AdDeliveryStopTime)

	return ad
}

// placeholderAd preserves whatever identity it can salvage from a record
// whose normalization blew up. Partial data beats losing the record.
func placeholderAd(raw apify.RawAd, index int) *ads.Ad {
	pageName := "Unknown"
	if raw != nil {
		if name, ok := raw["pageName"].(string); ok && name != "" {
			pageName = name
		} else if name, ok := raw["page_name"].(string); ok && name != "" {
			pageName = name
		}
	}

	ad := &ads.Ad{
		ID:                         fmt.Sprintf("source_err_%d_%d", time.Now().UnixMilli(), index),
		AdCreativeBodies:           []string{"No content available"},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{},
		AdCreativeLinkDescriptions: []string{},
		AdDeliveryStartTime:        time.Now().UTC().Format(time.RFC3339),
		ReachBreakdown:             datatypes.JSON("[]"),
		Currency:                   "USD",
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "0",
		Languages:                  []string{},
		PageName:                   pageName,
		PublisherPlatforms:         []string{},
		Spend:                      "0",
		TargetGender:               "ALL",
		TargetLocations:            []string{},
		MediaType:                  ads.MediaTypeText,
		Images:                     []string{},
		Videos:                     []string{},
	}
	ad.AdStatus = ads.StatusFor(ad.AdDeliveryStopTime)
	return ad
}

func fallbackID(index int) string {
	return fmt.Sprintf("source_%d_%d", time.Now().UnixMilli(), index)
}

// probe walks the field's alias paths and returns the first present,
// non-empty value.
func probe(raw apify.RawAd, field string) (any, bool) {
	for _, p := range adAliases[field] {
		if v, ok := lookup(raw, p); ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

func lookup(raw apify.RawAd, p path) (any, bool) {
	var current any = map[string]any(raw)
	for _, step := range p {
		switch key := step.(type) {
		case string:
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = m[key]
			if !ok {
				return nil, false
			}
		case int:
			arr, ok := current.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			current = arr[key]
		}
	}
	return current, true
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func probeString(raw apify.RawAd, field, def string) string {
	v, ok := probe(raw, field)
	if !ok {
		return def
	}
	if s := scalarString(v); s != "" {
		return s
	}
	return def
}

// probeScalar keeps metric-ish fields in their source encoding: strings
// pass through, numbers are formatted, structured values keep their JSON
// text so nothing the source disclosed is lost.
func probeScalar(raw apify.RawAd, field, def string) string {
	v, ok := probe(raw, field)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case float64, int, int64, bool:
		return scalarString(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return def
		}
		return string(b)
	}
}

// probeStringList coerces the alias hit into a list of text variants. A
// lone scalar becomes a single-element list; absent aliases yield an empty
// list, never nil, so downstream consumers never branch on null-vs-missing.
func probeStringList(raw apify.RawAd, field string) []string {
	v, ok := probe(raw, field)
	if !ok {
		return []string{}
	}

	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		if s := scalarString(t); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// probeJSON keeps breakdown structures verbatim as JSON text. Absent or
// unmarshalable values become an empty array.
func probeJSON(raw apify.RawAd, field string) datatypes.JSON {
	v, ok := probe(raw, field)
	if !ok {
		return datatypes.JSON("[]")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
