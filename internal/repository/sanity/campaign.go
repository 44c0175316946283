package sanity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noorcentre/donations-api/internal/config"
	"github.com/noorcentre/donations-api/internal/domain/campaign"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/httpclient"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// campaignProjection maps the studio document fields onto the shape this
// service consumes. Slug is flattened out of its wrapper object.
const campaignProjection = `{
  "id": _id,
  "slug": slug.current,
  title,
  description,
  startDate,
  endDate,
  isOngoing,
  signupStartDate,
  signupEndDate,
  active,
  presetAmounts,
  allowCustomAmount,
  minimumAmount,
  maximumAmount
}`

const (
	campaignBySlugQuery  = `*[_type == "donationCampaign" && slug.current == $slug][0]` + campaignProjection
	activeCampaignsQuery = `*[_type == "donationCampaign" && active == true] | order(startDate desc)` + campaignProjection
)

type campaignRepository struct {
	cfg    *config.Configuration
	client httpclient.Client
	logger *logger.Logger
}

// NewCampaignRepository returns a campaign.Repository backed by the Sanity
// GROQ query API.
func NewCampaignRepository(cfg *config.Configuration, client httpclient.Client, logger *logger.Logger) campaign.Repository {
	return &campaignRepository{cfg: cfg, client: client, logger: logger}
}

// queryResponse is the envelope the query API wraps every result in.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// campaignDocument is the raw decoded document; dates are civil-date
// strings and amounts are major-unit numbers.
type campaignDocument struct {
	ID                string    `json:"id"`
	Slug              string    `json:"slug"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	StartDate         string    `json:"startDate"`
	EndDate           *string   `json:"endDate"`
	IsOngoing         bool      `json:"isOngoing"`
	SignupStartDate   *string   `json:"signupStartDate"`
	SignupEndDate     *string   `json:"signupEndDate"`
	Active            bool      `json:"active"`
	PresetAmounts     []float64 `json:"presetAmounts"`
	AllowCustomAmount bool      `json:"allowCustomAmount"`
	MinimumAmount     *float64  `json:"minimumAmount"`
	MaximumAmount     *float64  `json:"maximumAmount"`
}

func (r *campaignRepository) GetBySlug(ctx context.Context, slug string) (*campaign.Campaign, error) {
	params := url.Values{}
	// GROQ parameters are JSON-encoded; quoting the slug keeps the query
	// itself free of user input.
	params.Set("$slug", strconv.Quote(slug))

	raw, err := r.query(ctx, campaignBySlugQuery, params)
	if err != nil {
		return nil, err
	}

	if isNullResult(raw) {
		return nil, ierr.NewErrorf("campaign %s not found", slug).
			WithHintf("No campaign exists for %s", slug).
			Mark(ierr.ErrNotFound)
	}

	var doc campaignDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Campaign content could not be decoded").
			Mark(ierr.ErrIntegration)
	}

	return doc.toDomain()
}

func (r *campaignRepository) ListActive(ctx context.Context) ([]*campaign.Campaign, error) {
	raw, err := r.query(ctx, activeCampaignsQuery, nil)
	if err != nil {
		return nil, err
	}

	if isNullResult(raw) {
		return []*campaign.Campaign{}, nil
	}

	var docs []campaignDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Campaign content could not be decoded").
			Mark(ierr.ErrIntegration)
	}

	campaigns := make([]*campaign.Campaign, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toDomain()
		if err != nil {
			// One malformed document must not take the listing down.
			r.logger.Warnw("skipping malformed campaign document",
				"slug", docs[i].Slug, "error", err)
			continue
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (r *campaignRepository) query(ctx context.Context, groq string, params url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Sanity.Timeout())
	defer cancel()

	values := url.Values{}
	values.Set("query", groq)
	for k, vs := range params {
		for _, v := range vs {
			values.Add(k, v)
		}
	}

	req := &httpclient.Request{
		Method: http.MethodGet,
		URL:    r.cfg.Sanity.QueryURL() + "?" + values.Encode(),
	}
	if token := r.cfg.Sanity.Token; token != "" {
		req.Headers = map[string]string{"Authorization": "Bearer " + token}
	}

	resp, err := r.client.Send(ctx, req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to reach the content store").
			Mark(ierr.ErrIntegration)
	}

	var envelope queryResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Content store returned an unexpected response").
			Mark(ierr.ErrIntegration)
	}
	return envelope.Result, nil
}

func isNullResult(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (d *campaignDocument) toDomain() (*campaign.Campaign, error) {
	startDate, err := types.ParseCivilDate(d.StartDate)
	if err != nil {
		return nil, contentError(d.Slug, err)
	}

	c := &campaign.Campaign{
		ID:                d.ID,
		Slug:              d.Slug,
		Title:             d.Title,
		Description:       d.Description,
		StartDate:         startDate,
		Ongoing:           d.IsOngoing,
		Active:            d.Active,
		AllowCustomAmount: d.AllowCustomAmount,
	}

	if c.EndDate, err = parseOptionalDate(d.EndDate); err != nil {
		return nil, contentError(d.Slug, err)
	}
	if c.SignupStartDate, err = parseOptionalDate(d.SignupStartDate); err != nil {
		return nil, contentError(d.Slug, err)
	}
	if c.SignupEndDate, err = parseOptionalDate(d.SignupEndDate); err != nil {
		return nil, contentError(d.Slug, err)
	}

	c.PresetAmounts = lo.Map(d.PresetAmounts, func(amount float64, _ int) decimal.Decimal {
		return decimal.NewFromFloat(amount)
	})
	if d.MinimumAmount != nil {
		c.MinimumAmount = lo.ToPtr(decimal.NewFromFloat(*d.MinimumAmount))
	}
	if d.MaximumAmount != nil {
		c.MaximumAmount = lo.ToPtr(decimal.NewFromFloat(*d.MaximumAmount))
	}

	return c, nil
}

func parseOptionalDate(s *string) (*types.CivilDate, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := types.ParseCivilDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func contentError(slug string, err error) error {
	return ierr.WithError(err).
		WithHintf("Campaign content for %s is invalid", slug).
		Mark(ierr.ErrIntegration)
}
