package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/draftquote/internal/wire"
	"github.com/harborline/draftquote/pkg/types"
)

func TestCreateDraft(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody wire.WireCreate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(wire.WireResponse{DraftQuoteID: "srv-1"})
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, time.Second)
	resp, err := store.CreateDraft(context.Background(), &wire.WireCreate{RequestQuoteID: "req-1"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/draft-quotes", gotPath)
	assert.Equal(t, "req-1", gotBody.RequestQuoteID)
	assert.Equal(t, "srv-1", resp.DraftQuoteID)
}

func TestUpdateDraft(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(wire.WireResponse{DraftQuoteID: "srv-1"})
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, time.Second)
	_, err := store.UpdateDraft(context.Background(), "srv-1", &wire.WireUpdate{})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/draft-quotes/srv-1", gotPath)
}

func TestGetDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/draft-quotes/srv-9", r.URL.Path)
		_ = json.NewEncoder(w).Encode(wire.WireResponse{DraftQuoteID: "srv-9", RequestQuoteID: "req-9"})
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, time.Second)
	resp, err := store.GetDraft(context.Background(), "srv-9")
	require.NoError(t, err)
	assert.Equal(t, "req-9", resp.RequestQuoteID)
}

func TestErrorStatusWrapsErrRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, time.Second)
	_, err := store.GetDraft(context.Background(), "srv-1")
	assert.ErrorIs(t, err, types.ErrRemote)
}

func TestTransportFailureWrapsErrRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	store := NewHTTPStore(srv.URL, time.Second)
	_, err := store.GetDraft(context.Background(), "srv-1")
	assert.ErrorIs(t, err, types.ErrRemote)
}

func TestBadResponseBodyWrapsErrRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, time.Second)
	_, err := store.GetDraft(context.Background(), "srv-1")
	assert.ErrorIs(t, err, types.ErrRemote)
}
