package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adscope/internal/apify"
	"adscope/internal/domain/ads"
)

func TestNormalize_Defaults(t *testing.T) {
	ad := Normalize(apify.RawAd{}, 0)

	// List fields are always empty sequences, never nil.
	assert.NotNil(t, ad.AdCreativeBodies)
	assert.Empty(t, ad.AdCreativeBodies)
	assert.NotNil(t, ad.AdCreativeLinkCaptions)
	assert.Empty(t, ad.AdCreativeLinkCaptions)
	assert.NotNil(t, ad.Languages)
	assert.Empty(t, ad.Languages)
	assert.NotNil(t, ad.PublisherPlatforms)
	assert.Empty(t, ad.PublisherPlatforms)
	assert.NotNil(t, ad.TargetLocations)
	assert.Empty(t, ad.TargetLocations)
	assert.NotNil(t, ad.Images)
	assert.NotNil(t, ad.Videos)

	assert.Equal(t, "Unknown", ad.PageName)
	assert.Equal(t, "USD", ad.Currency)
	assert.Equal(t, "ALL", ad.TargetGender)
	assert.Equal(t, "0", ad.Impressions)
	assert.Equal(t, "0", ad.Spend)
	assert.Equal(t, ads.MediaTypeText, ad.MediaType)
	assert.Equal(t, ads.StatusActive, ad.AdStatus)
	assert.JSONEq(t, "[]", string(ad.ReachBreakdown))
	assert.JSONEq(t, "[]", string(ad.DemographicDistribution))

	// No id-like alias present: a fallback id is generated.
	assert.True(t, strings.HasPrefix(ad.ID, "source_"), "got id %q", ad.ID)
}

func TestNormalize_FallbackIDsDifferPerIndex(t *testing.T) {
	a := Normalize(apify.RawAd{}, 0)
	b := Normalize(apify.RawAd{}, 1)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNormalize_AliasProbing(t *testing.T) {
	raw := apify.RawAd{
		"adArchiveID":    "123456",
		"pageName":       "Nike",
		"advertiserName": "Nike Inc",
		"body":           "Just Do It",
		"startedRunningAt": "2024-10-01T00:00:00Z",
		"targetGender":   "FEMALE",
		"spendLower":     "1000-2000",
	}

	ad := Normalize(raw, 0)

	assert.Equal(t, "123456", ad.ID)
	assert.Equal(t, "Nike", ad.PageName) // pageName outranks advertiserName
	assert.Equal(t, []string{"Just Do It"}, ad.AdCreativeBodies)
	assert.Equal(t, "2024-10-01T00:00:00Z", ad.AdDeliveryStartTime)
	assert.Equal(t, "FEMALE", ad.TargetGender)
	assert.Equal(t, "1000-2000", ad.Spend)
}

func TestNormalize_FirstNonEmptyAliasWins(t *testing.T) {
	raw := apify.RawAd{
		"ad_creative_bodies": []any{},      // present but empty, skipped
		"adCreativeBodies":   []any{"variant one", "variant two"},
	}

	ad := Normalize(raw, 0)
	assert.Equal(t, []string{"variant one", "variant two"}, ad.AdCreativeBodies)
}

func TestNormalize_CardsComposite(t *testing.T) {
	raw := apify.RawAd{
		"id": "card-ad",
		"cards": []any{
			map[string]any{
				"body":      "card body",
				"title":     "card title",
				"link":      "https://example.com/landing",
				"thumbnail": "https://example.com/thumb.jpg",
			},
		},
	}

	ad := Normalize(raw, 0)

	assert.Equal(t, []string{"card body"}, ad.AdCreativeBodies)
	assert.Equal(t, []string{"card title"}, ad.AdCreativeLinkTitles)
	assert.Equal(t, "https://example.com/landing", ad.LandingPageURL)
	assert.Equal(t, []string{"https://example.com/thumb.jpg"}, ad.Images)
	assert.Equal(t, ads.MediaTypeImage, ad.MediaType)
}

func TestNormalize_MediaTypePrecedence(t *testing.T) {
	// Video outranks image.
	ad := Normalize(apify.RawAd{
		"images": []any{"https://example.com/a.jpg"},
		"videos": []any{"https://example.com/a.mp4"},
	}, 0)
	assert.Equal(t, ads.MediaTypeVideo, ad.MediaType)

	ad = Normalize(apify.RawAd{
		"images": []any{"https://example.com/a.jpg"},
	}, 0)
	assert.Equal(t, ads.MediaTypeImage, ad.MediaType)
}

func TestNormalize_StatusDerivedFromStopTime(t *testing.T) {
	running := Normalize(apify.RawAd{
		"ad_delivery_start_time": "2024-01-01T00:00:00Z",
	}, 0)
	assert.Equal(t, ads.StatusActive, running.AdStatus)

	stopped := Normalize(apify.RawAd{
		"ad_delivery_start_time": "2024-01-01T00:00:00Z",
		"ad_delivery_stop_time":  "2024-02-01T00:00:00Z",
	}, 0)
	assert.Equal(t, ads.StatusInactive, stopped.AdStatus)
}

func TestNormalize_StructuredMetricsKeepJSONText(t *testing.T) {
	raw := apify.RawAd{
		"impressions": map[string]any{"lower_bound": "1000", "upper_bound": "5000"},
	}

	ad := Normalize(raw, 0)
	assert.JSONEq(t, `{"lower_bound":"1000","upper_bound":"5000"}`, ad.Impressions)
}

func TestNormalize_ReachBreakdownVerbatim(t *testing.T) {
	raw := apify.RawAd{
		"reachBreakdown": []any{
			map[string]any{"country": "US", "age_gender_breakdowns": []any{}},
			map[string]any{"country": "CA"},
		},
	}

	ad := Normalize(raw, 0)
	assert.Equal(t, 2, ad.ReachBreakdownCount())
}

func TestNormalize_NumericScalarsBecomeStrings(t *testing.T) {
	raw := apify.RawAd{
		"impressions": float64(120000),
		"spend":       float64(1500.5),
	}

	ad := Normalize(raw, 0)
	assert.Equal(t, "120000", ad.Impressions)
	assert.Equal(t, "1500.5", ad.Spend)
}

func TestNormalize_NilRecordYieldsPlaceholder(t *testing.T) {
	// A nil map probes as all-absent; the record still comes back whole.
	ad := Normalize(nil, 3)
	require.NotNil(t, ad)
	assert.Equal(t, "Unknown", ad.PageName)
	assert.Equal(t, ads.StatusActive, ad.AdStatus)
}
