package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAds_MissingTokenIsConfigurationError(t *testing.T) {
	c := NewClient("", "actor-1")

	_, err := c.FetchAds(context.Background(), SearchQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIFY_API_TOKEN")
}

func TestFetchAds_RunThenDataset(t *testing.T) {
	var gotInput actorInput

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/acts/actor-1/runs":
			require.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "secret", r.URL.Query().Get("token"))
			assert.Equal(t, "300", r.URL.Query().Get("waitForFinish"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":               "run-1",
					"status":           "SUCCEEDED",
					"defaultDatasetId": "ds-1",
				},
			})
		case "/datasets/ds-1/items":
			require.Equal(t, http.MethodGet, r.Method)
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": "ad-1", "pageName": "Nike"},
				{"id": "ad-2"},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("secret", "actor-1")
	c.baseURL = srv.URL

	raws, err := c.FetchAds(context.Background(), SearchQuery{
		SearchTerms: "nike",
		Country:     "US",
		MaxAds:      25,
	})
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "ad-1", raws[0]["id"])
	assert.Equal(t, "Nike", raws[0]["pageName"])

	assert.Equal(t, "nike", gotInput.SearchTerm)
	assert.Equal(t, "US", gotInput.Country)
	assert.Equal(t, 25, gotInput.MaxAds)
	assert.Equal(t, "ALL", gotInput.ActiveStatus)
}

func TestFetchAds_ActorFailureSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid token"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad", "actor-1")
	c.baseURL = srv.URL

	_, err := c.FetchAds(context.Background(), SearchQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start actor run")
	assert.Contains(t, err.Error(), "invalid token")
}

func TestFetchAds_RunWithoutDatasetIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "run-1"}})
	}))
	defer srv.Close()

	c := NewClient("secret", "actor-1")
	c.baseURL = srv.URL

	_, err := c.FetchAds(context.Background(), SearchQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset")
}
