package providers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/storage"
	"github.com/ja-he/tripplan/internal/storage/providers"
)

type recordedRequest struct {
	method        string
	path          string
	authorization string
	body          model.Point
}

func newTestServer(t *testing.T) (*httptest.Server, *[]recordedRequest) {
	requests := &[]recordedRequest{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path, authorization: r.Header.Get("Authorization")}
		if r.Body != nil && (r.Method == http.MethodPut || r.Method == http.MethodPost) {
			if err := json.NewDecoder(r.Body).Decode(&rec.body); err != nil {
				t.Error("bad request body:", err)
			}
		}
		*requests = append(*requests, rec)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/points":
			w.Write([]byte(`[{"id":"p1","type":"taxi","date_from":"2024-07-01T09:00:00Z","date_to":"2024-07-01T10:00:00Z","destination":"gva","base_price":40,"is_favorite":true}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/destinations":
			w.Write([]byte(`[{"id":"gva","name":"Geneva","description":"","pictures":[]}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/offers":
			w.Write([]byte(`[{"type":"taxi","offers":[{"id":"t1","title":"Upgrade","price":20}]}]`))
		case r.Method == http.MethodPut && r.URL.Path == "/points/p1":
			json.NewEncoder(w).Encode(rec.body)
		case r.Method == http.MethodPost && r.URL.Path == "/points":
			rec.body.ID = "assigned"
			json.NewEncoder(w).Encode(rec.body)
		case r.Method == http.MethodDelete && r.URL.Path == "/points/p1":
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/points/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			http.Error(w, "no such thing", http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, requests
}

func TestRESTProvider(t *testing.T) {
	ctx := context.Background()
	srv, requests := newTestServer(t)

	p, err := providers.NewRESTProvider(srv.URL+"/", "Basic abc123", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	t.Run("get", func(t *testing.T) {
		points, err := p.GetPoints(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(points) != 1 || points[0].ID != "p1" || !points[0].IsFavorite {
			t.Fatalf("unexpected points %v", points)
		}
		if points[0].Offers == nil {
			t.Error("expected missing offers to decode as empty")
		}
		if !points[0].Start.Equal(time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start %s", points[0].Start)
		}

		destinations, err := p.GetDestinations(ctx)
		if err != nil || len(destinations) != 1 {
			t.Errorf("unexpected destinations %v (%v)", destinations, err)
		}
		offers, err := p.GetOffers(ctx)
		if err != nil || len(offers) != 1 || offers[0].Offers[0].Price != 20 {
			t.Errorf("unexpected offers %v (%v)", offers, err)
		}
	})

	t.Run("authorization header", func(t *testing.T) {
		for _, r := range *requests {
			if r.authorization != "Basic abc123" {
				t.Errorf("%s %s sent authorization %q", r.method, r.path, r.authorization)
			}
		}
	})

	t.Run("update and add", func(t *testing.T) {
		point := taxi()
		point.ID = "p1"
		updated, err := p.UpdatePoint(ctx, point)
		if err != nil {
			t.Fatal(err)
		}
		if updated.ID != "p1" || updated.BasePrice != 40 {
			t.Errorf("unexpected update result %+v", updated)
		}

		added, err := p.AddPoint(ctx, taxi())
		if err != nil {
			t.Fatal(err)
		}
		if added.ID != "assigned" {
			t.Errorf("expected the server's id, got %q", added.ID)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := p.DeletePoint(ctx, "p1"); err != nil {
			t.Error(err)
		}
		err := p.DeletePoint(ctx, "unknown")
		var statusErr *providers.StatusError
		if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
			t.Errorf("expected a 404 status error, got %v", err)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			t.Error("expected 404 to map to not found")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		slow, err := providers.NewRESTProvider(srv.URL, "", 50*time.Millisecond)
		if err != nil {
			t.Fatal(err)
		}
		if err := slow.DeletePoint(ctx, "slow"); err == nil {
			t.Error("expected the request to time out")
		}
	})
}
