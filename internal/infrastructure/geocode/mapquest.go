package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

const cacheTTL = 24 * time.Hour

// MapQuest resolves addresses and postal codes against the MapQuest
// geocoding REST API. Results are cached in Redis since the same
// address is geocoded on every save and radius query.
type MapQuest struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewMapQuest(baseURL, apiKey string, rdb *redis.Client, logger *logrus.Logger) *MapQuest {
	return &MapQuest{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Redis:   rdb,
		Logger:  logger,
	}
}

func cacheKey(address string) string { return "geo:addr:" + address }

// mapquestResponse covers the fields we read from the provider payload.
type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			LatLng struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			AdminArea3 string `json:"adminArea3"` // state
			AdminArea1 string `json:"adminArea1"` // country
			PostalCode string `json:"postalCode"`
		} `json:"locations"`
	} `json:"results"`
}

func (g *MapQuest) Geocode(ctx context.Context, address string) (*entity.Location, error) {
	if g.Redis != nil {
		var cached entity.Location
		if ok, err := helpers.RedisGetJSON(ctx, g.Redis, cacheKey(address), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "geocoder misconfigured")
	}
	q := u.Query()
	q.Set("key", g.APIKey)
	q.Set("location", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "could not geocode address")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.New(apperr.Upstream, "geocoder returned status %d", resp.StatusCode)
	}

	var payload mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "could not geocode address")
	}
	if len(payload.Results) == 0 || len(payload.Results[0].Locations) == 0 {
		return nil, apperr.New(apperr.Upstream, "could not geocode address %q", address)
	}

	loc := payload.Results[0].Locations[0]
	// A zero lat/lng pair means the provider had no match.
	if loc.LatLng.Lat == 0 && loc.LatLng.Lng == 0 {
		return nil, apperr.New(apperr.Upstream, "could not geocode address %q", address)
	}

	out := &entity.Location{
		Longitude:        loc.LatLng.Lng,
		Latitude:         loc.LatLng.Lat,
		FormattedAddress: address,
		Street:           loc.Street,
		City:             loc.AdminArea5,
		State:            loc.AdminArea3,
		Zipcode:          loc.PostalCode,
		Country:          loc.AdminArea1,
	}

	if g.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, g.Redis, cacheKey(address), out, cacheTTL); err != nil && g.Logger != nil {
			g.Logger.WithError(err).Warn("geocode cache write failed")
		}
	}
	return out, nil
}
