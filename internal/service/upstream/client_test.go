package upstream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
)

func TestForwardPassesBytesThrough(t *testing.T) {
	in := []byte(`{"age": 40, "gender":"Female"}`)
	var seen []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = io.ReadAll(r.Body)
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"probability":0.12,"prediction":0}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second).Forward(context.Background(), in)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if !bytes.Equal(seen, in) {
		t.Fatalf("body modified: %s", seen)
	}
	if resp.StatusCode != http.StatusOK || resp.ContentType != "application/json" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if string(resp.Body) != `{"probability":0.12,"prediction":0}` {
		t.Fatalf("unexpected body %s", resp.Body)
	}
}

func TestForwardUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Forward(context.Background(), []byte(`{}`))
	var re *models.RelayError
	if !errors.As(err, &re) || re.Kind != models.UpstreamFailure || re.Status != http.StatusBadGateway {
		t.Fatalf("expected upstream failure 502, got %v", err)
	}
}

func TestForwardNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Forward(context.Background(), []byte(`{}`))
	var re *models.RelayError
	if !errors.As(err, &re) || re.Kind != models.NetworkFailure {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestForwardTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, 50*time.Millisecond).Forward(context.Background(), []byte(`{}`))
	var re *models.RelayError
	if !errors.As(err, &re) || re.Kind != models.NetworkFailure {
		t.Fatalf("expected network failure on timeout, got %v", err)
	}
}

func TestForwardInvalidURL(t *testing.T) {
	_, err := New("://bad", time.Second).Forward(context.Background(), []byte(`{}`))
	var re *models.RelayError
	if !errors.As(err, &re) || re.Kind != models.UnknownFailure {
		t.Fatalf("expected unknown failure, got %v", err)
	}
}

func TestForwardOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"probability":0.12,"prediction":0,"pad":"` + strings.Repeat("x", 64) + `"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second, xhttp.WithMaxResponseBytes(32)).Forward(context.Background(), []byte(`{}`))
	var re *models.RelayError
	if !errors.As(err, &re) || re.Kind != models.UnknownFailure {
		t.Fatalf("expected unknown failure, got %v", err)
	}
	if resp != nil {
		t.Fatalf("truncated body relayed: %s", resp.Body)
	}
}
