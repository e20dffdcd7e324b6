package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"

	"adscope/internal/database"
	"adscope/internal/domain/ads"
	"adscope/internal/domain/ingest"
)

// Seeds the store with a recognizable sample ad set so the dashboard has
// data before the first real sync. Scores are computed by the real scorer,
// not hard-coded, so seeded rows rank the same way ingested ones would.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_PATH")
	if dsn == "" {
		dsn = "ads.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	if err := db.AutoMigrate(&ads.Ad{}); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ads")

	repo := ads.NewRepository(db)
	scorer := ingest.NewScorer()
	ctx := context.Background()

	for i := range sampleAds {
		ad := &sampleAds[i]
		scorer.Apply(ad)
		if err := repo.Upsert(ctx, ad); err != nil {
			log.Fatalf("seed ad %s failed: %v", ad.ID, err)
		}
	}

	log.Printf("Seeded %d sample ads", len(sampleAds))
}

var sampleAds = []ads.Ad{
	{
		ID:                         "sample_001",
		PageName:                   "Nike",
		AdCreativeBodies:           []string{"Just Do It. Find your greatness with our latest collection of performance wear."},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{"New Nike Air Collection - Shop Now"},
		AdCreativeLinkDescriptions: []string{"Discover innovative designs and superior comfort"},
		AdDeliveryStartTime:        "2024-10-01T00:00:00Z",
		AdSnapshotURL:              "https://www.facebook.com/ads/library",
		ReachBreakdown:             datatypes.JSON("[]"),
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "500000-1000000",
		Spend:                      "15000-20000",
		Currency:                   "USD",
		Languages:                  []string{"en"},
		PublisherPlatforms:         []string{"facebook", "instagram"},
		TargetLocations:            []string{"United States", "Canada"},
		TargetAges:                 "18-45",
		TargetGender:               "ALL",
		AdStatus:                   ads.StatusActive,
		MediaType:                  ads.MediaTypeImage,
		Images:                     []string{"https://cdn.example.com/nike-air.jpg"},
		Videos:                     []string{},
	},
	{
		ID:                         "sample_002",
		PageName:                   "Shopify",
		AdCreativeBodies:           []string{"Start your online business today. Join over 1 million entrepreneurs worldwide."},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{"Start Your Free Trial - No Credit Card Required"},
		AdCreativeLinkDescriptions: []string{"Build your dream store in minutes"},
		AdDeliveryStartTime:        "2024-09-15T00:00:00Z",
		AdSnapshotURL:              "https://www.facebook.com/ads/library",
		ReachBreakdown:             datatypes.JSON(`[{"country":"US"},{"country":"GB"},{"country":"AU"}]`),
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "1000000-5000000",
		Spend:                      "25000-50000",
		Currency:                   "USD",
		Languages:                  []string{"en"},
		PublisherPlatforms:         []string{"facebook", "instagram", "audience_network"},
		TargetLocations:            []string{"United States", "United Kingdom", "Australia"},
		TargetAges:                 "25-54",
		TargetGender:               "ALL",
		AdStatus:                   ads.StatusActive,
		MediaType:                  ads.MediaTypeVideo,
		Images:                     []string{},
		Videos:                     []string{"https://cdn.example.com/shopify-promo.mp4"},
	},
	{
		ID:                         "sample_003",
		PageName:                   "Planet Fitness",
		AdCreativeBodies:           []string{"$10 a month. No commitment. Judgment Free Zone. Join today!"},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{"Join Planet Fitness - Limited Time Offer"},
		AdCreativeLinkDescriptions: []string{"Your fitness journey starts here"},
		AdDeliveryStartTime:        "2024-10-10T00:00:00Z",
		AdSnapshotURL:              "https://www.facebook.com/ads/library",
		ReachBreakdown:             datatypes.JSON("[]"),
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "250000-500000",
		Spend:                      "8000-12000",
		Currency:                   "USD",
		Languages:                  []string{"en"},
		PublisherPlatforms:         []string{"facebook", "instagram"},
		TargetLocations:            []string{"United States"},
		TargetAges:                 "18-35",
		TargetGender:               "ALL",
		AdStatus:                   ads.StatusActive,
		MediaType:                  ads.MediaTypeText,
		Images:                     []string{},
		Videos:                     []string{},
	},
	{
		ID:                         "sample_004",
		PageName:                   "Grammarly",
		AdCreativeBodies:           []string{"Write with confidence. Grammarly helps you communicate more effectively."},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{"Get Grammarly Premium - 30% Off"},
		AdCreativeLinkDescriptions: []string{"AI-powered writing assistant trusted by millions"},
		AdDeliveryStartTime:        "2024-09-20T00:00:00Z",
		AdDeliveryStopTime:         "2024-10-20T00:00:00Z",
		AdSnapshotURL:              "https://www.facebook.com/ads/library",
		ReachBreakdown:             datatypes.JSON("[]"),
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "750000-1000000",
		Spend:                      "18000-22000",
		Currency:                   "USD",
		Languages:                  []string{"en"},
		PublisherPlatforms:         []string{"facebook", "instagram"},
		TargetLocations:            []string{"United States", "Canada", "United Kingdom"},
		TargetAges:                 "25-54",
		TargetGender:               "ALL",
		AdStatus:                   ads.StatusInactive,
		MediaType:                  ads.MediaTypeImage,
		Images:                     []string{"https://cdn.example.com/grammarly.png"},
		Videos:                     []string{},
	},
	{
		ID:                         "sample_005",
		PageName:                   "HelloFresh",
		AdCreativeBodies:           []string{"Fresh ingredients delivered to your door. Cook delicious meals in 30 minutes or less."},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{"Get $100 Off Your First Box"},
		AdCreativeLinkDescriptions: []string{"America #1 Meal Kit"},
		AdDeliveryStartTime:        "2024-10-05T00:00:00Z",
		AdSnapshotURL:              "https://www.facebook.com/ads/library",
		ReachBreakdown:             datatypes.JSON(`[{"country":"US"}]`),
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "2000000-5000000",
		Spend:                      "35000-45000",
		Currency:                   "USD",
		Languages:                  []string{"en"},
		PublisherPlatforms:         []string{"facebook", "instagram"},
		TargetLocations:            []string{"United States"},
		TargetAges:                 "25-44",
		TargetGender:               "ALL",
		AdStatus:                   ads.StatusActive,
		MediaType:                  ads.MediaTypeVideo,
		Images:                     []string{},
		Videos:                     []string{"https://cdn.example.com/hellofresh.mp4"},
	},
	{
		ID:                         "sample_006",
		PageName:                   "Notion",
		AdCreativeBodies:           []string{"One workspace. Every team. Get everyone working in a single tool designed to be flexible."},
		AdCreativeLinkCaptions:     []string{},
		AdCreativeLinkTitles:       []string{"Try Notion for Free"},
		AdCreativeLinkDescriptions: []string{"The all-in-one workspace for your notes, tasks, wikis, and databases"},
		AdDeliveryStartTime:        "2024-10-12T00:00:00Z",
		AdSnapshotURL:              "https://www.facebook.com/ads/library",
		ReachBreakdown:             datatypes.JSON("[]"),
		DemographicDistribution:    datatypes.JSON("[]"),
		Impressions:                "100000-250000",
		Spend:                      "5000-8000",
		Currency:                   "USD",
		Languages:                  []string{"en"},
		PublisherPlatforms:         []string{"facebook"},
		TargetLocations:            []string{"United States", "Germany", "Japan"},
		TargetAges:                 "22-45",
		TargetGender:               "ALL",
		AdStatus:                   ads.StatusActive,
		MediaType:                  ads.MediaTypeText,
		Images:                     []string{},
		Videos:                     []string{},
	},
}
