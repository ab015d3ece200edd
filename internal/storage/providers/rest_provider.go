package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/storage"
)

// RESTProvider talks to a remote trip server over HTTP.
type RESTProvider struct {
	endpoint      string
	authorization string
	client        *http.Client
}

// NewRESTProvider returns a provider for the server at endpoint. The
// authorization string is sent verbatim in the Authorization header of every
// request; a zero timeout means no per-request timeout.
func NewRESTProvider(endpoint, authorization string, timeout time.Duration) (*RESTProvider, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint '%s' (%w)", endpoint, err)
	}
	return &RESTProvider{
		endpoint:      strings.TrimSuffix(endpoint, "/"),
		authorization: authorization,
		client:        &http.Client{Timeout: timeout},
	}, nil
}

// StatusError is returned for responses that are not a success.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d (%s)", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap maps 404 to storage.ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return storage.ErrNotFound
	}
	return nil
}

func (p *RESTProvider) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request body (%w)", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("could not create request (%w)", err)
	}
	if p.authorization != "" {
		req.Header.Set("Authorization", p.authorization)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed (%w)", method, path, err)
	}
	defer resp.Body.Close()
	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("could not decode response of %s %s (%w)", method, path, err)
	}
	return nil
}

// GetPoints fetches all points.
func (p *RESTProvider) GetPoints(ctx context.Context) ([]model.Point, error) {
	var result []model.Point
	if err := p.do(ctx, http.MethodGet, "/points", nil, &result); err != nil {
		return nil, err
	}
	for i := range result {
		if result[i].Offers == nil {
			result[i].Offers = []model.OfferID{}
		}
	}
	return result, nil
}

// GetDestinations fetches all destinations.
func (p *RESTProvider) GetDestinations(ctx context.Context) ([]model.Destination, error) {
	var result []model.Destination
	if err := p.do(ctx, http.MethodGet, "/destinations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetOffers fetches all offer groups.
func (p *RESTProvider) GetOffers(ctx context.Context) ([]model.OfferGroup, error) {
	var result []model.OfferGroup
	if err := p.do(ctx, http.MethodGet, "/offers", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdatePoint sends the point and returns the server's version of it.
func (p *RESTProvider) UpdatePoint(ctx context.Context, point model.Point) (model.Point, error) {
	var result model.Point
	if err := p.do(ctx, http.MethodPut, "/points/"+url.PathEscape(string(point.ID)), point, &result); err != nil {
		return model.Point{}, err
	}
	return result, nil
}

// AddPoint creates the point and returns the server's version, carrying the
// new ID.
func (p *RESTProvider) AddPoint(ctx context.Context, point model.Point) (model.Point, error) {
	var result model.Point
	if err := p.do(ctx, http.MethodPost, "/points", point, &result); err != nil {
		return model.Point{}, err
	}
	return result, nil
}

// DeletePoint deletes the point.
func (p *RESTProvider) DeletePoint(ctx context.Context, id model.PointID) error {
	return p.do(ctx, http.MethodDelete, "/points/"+url.PathEscape(string(id)), nil, nil)
}

// Close releases idle connections.
func (p *RESTProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
