package metadata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"discograph/internal/album"
	"discograph/internal/services"
	"discograph/internal/services/metadata"
	"discograph/internal/testsupport"
)

func newServer(t *testing.T) (*httptest.Server, *http.Request) {
	t.Helper()
	var seen http.Request
	doc, err := album.Encode(testsupport.SampleAlbum("KSLA-0178", []string{"Track One", "Track Two"}))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		switch r.URL.Path {
		case "/albums/KSLA-0178":
			w.Header().Set("Content-Type", "application/toml")
			_, _ = w.Write(doc)
		case "/albums/BAD-1":
			_, _ = w.Write([]byte("[album\nbroken"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestFetchAlbum(t *testing.T) {
	server, seen := newServer(t)
	client, err := metadata.NewClient(server.URL, metadata.WithToken("secret"))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	a, err := client.FetchAlbum(context.Background(), "KSLA-0178")
	if err != nil {
		t.Fatalf("FetchAlbum failed: %v", err)
	}
	if a.Catalog != "KSLA-0178" || len(a.Discs) != 1 || len(a.Discs[0].Tracks) != 2 {
		t.Fatalf("unexpected album: %+v", a)
	}
	if got := seen.Header.Get("Authorization"); got != "Bearer secret" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestFetchAlbumNotFound(t *testing.T) {
	server, _ := newServer(t)
	client, err := metadata.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	_, err = client.FetchAlbum(context.Background(), "MISSING-1")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchAlbumRejectsBrokenDocument(t *testing.T) {
	server, _ := newServer(t)
	client, err := metadata.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	_, err = client.FetchAlbum(context.Background(), "BAD-1")
	if !errors.Is(err, services.ErrRemote) {
		t.Fatalf("err = %v, want ErrRemote", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := metadata.NewClient("  "); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}
