package sanity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noorcentre/donations-api/internal/config"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/httpclient"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) (*campaignRepository, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.GetDefaultConfig()
	cfg.Sanity.BaseURL = server.URL
	cfg.Sanity.Token = "test-token"

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	repo := NewCampaignRepository(cfg, httpclient.NewDefaultClient(), log)
	return repo.(*campaignRepository), server
}

func envelope(result any) []byte {
	out, _ := json.Marshal(map[string]any{"result": result})
	return out
}

func campaignJSON() map[string]any {
	return map[string]any{
		"id":                "doc-1",
		"slug":              "ramadan-appeal",
		"title":             "Ramadan Appeal",
		"description":       "Daily giving for the last ten nights",
		"startDate":         "2025-03-10",
		"endDate":           "2025-03-20",
		"isOngoing":         false,
		"active":            true,
		"presetAmounts":     []float64{5, 10, 25},
		"allowCustomAmount": true,
		"minimumAmount":     1.0,
	}
}

func TestGetBySlug(t *testing.T) {
	var gotQuery, gotSlug, gotAuth string
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSlug = r.URL.Query().Get("$slug")
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelope(campaignJSON()))
	})

	c, err := repo.GetBySlug(context.Background(), "ramadan-appeal")
	require.NoError(t, err)

	assert.Equal(t, "doc-1", c.ID)
	assert.Equal(t, "ramadan-appeal", c.Slug)
	assert.Equal(t, types.MustCivilDate("2025-03-10"), c.StartDate)
	require.NotNil(t, c.EndDate)
	assert.Equal(t, types.MustCivilDate("2025-03-20"), *c.EndDate)
	assert.True(t, c.Active)
	assert.False(t, c.IsOngoing())
	assert.Len(t, c.PresetAmounts, 3)
	assert.True(t, c.PresetAmounts[1].Equal(decimal.NewFromInt(10)))
	require.NotNil(t, c.MinimumAmount)
	assert.True(t, c.MinimumAmount.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, c.MaximumAmount)
	assert.Nil(t, c.SignupStartDate)
	assert.Nil(t, c.SignupEndDate)

	// The slug travels as a JSON-encoded GROQ parameter, never spliced
	// into the query text.
	assert.Contains(t, gotQuery, "slug.current == $slug")
	assert.Equal(t, `"ramadan-appeal"`, gotSlug)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestGetBySlugNotFound(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null}`))
	})

	_, err := repo.GetBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestGetBySlugMalformedDate(t *testing.T) {
	doc := campaignJSON()
	doc["startDate"] = "10/03/2025"
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(doc))
	})

	_, err := repo.GetBySlug(context.Background(), "ramadan-appeal")
	require.Error(t, err)
	assert.True(t, ierr.IsIntegration(err))
}

func TestGetBySlugUpstreamFailure(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := repo.GetBySlug(context.Background(), "ramadan-appeal")
	require.Error(t, err)
	assert.True(t, ierr.IsIntegration(err))
	assert.False(t, ierr.IsNotFound(err))

	// The envelope code must be the upstream taxonomy code even though the
	// transport layer marked the error first.
	assert.Equal(t, ierr.ErrCodeIntegration, ierr.CodeFromErr(err))
	assert.Equal(t, http.StatusBadGateway, ierr.HTTPStatusFromErr(err))
}

func TestListActive(t *testing.T) {
	second := campaignJSON()
	second["id"] = "doc-2"
	second["slug"] = "general-fund"
	delete(second, "endDate")
	second["isOngoing"] = true

	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope([]any{campaignJSON(), second}))
	})

	campaigns, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "ramadan-appeal", campaigns[0].Slug)
	assert.Equal(t, "general-fund", campaigns[1].Slug)
	assert.True(t, campaigns[1].IsOngoing())
}

func TestListActiveSkipsMalformedDocuments(t *testing.T) {
	bad := campaignJSON()
	bad["slug"] = "broken"
	bad["startDate"] = "not-a-date"

	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope([]any{bad, campaignJSON()}))
	})

	campaigns, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "ramadan-appeal", campaigns[0].Slug)
}

func TestListActiveEmptyResult(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null}`))
	})

	campaigns, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, campaigns)
}
