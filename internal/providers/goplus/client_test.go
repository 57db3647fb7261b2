package goplus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairsentry/pairsentry/internal/config"
)

func TestTokenSecurity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/token_security/solana", r.URL.Path)
		require.Equal(t, "mint123", r.URL.Query().Get("contract_addresses"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":1,"message":"ok","result":{"mint123":{"is_mintable":"1","metadata_mutable":"0","holders":null}}}`))
	}))
	defer srv.Close()

	c := New(config.ProvidersConfig{GoPlusBaseURL: srv.URL})
	require.True(t, c.Configured())

	got, err := c.TokenSecurity(context.Background(), "mint123")
	require.NoError(t, err)
	require.Equal(t, "1", got["mintable"])
	require.Equal(t, "0", got["mutable_metadata"])
	require.NotContains(t, got, "top_10_holders")
}

func TestTokenSecurityMismatchedResultKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":1,"message":"ok","result":{"MINT123":{"is_honeypot":"1"}}}`))
	}))
	defer srv.Close()

	c := New(config.ProvidersConfig{GoPlusBaseURL: srv.URL})
	got, err := c.TokenSecurity(context.Background(), "mint123")
	require.NoError(t, err)
	require.Equal(t, "1", got["honeypot"])
}

func TestTokenSecurityAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":4029,"message":"too many requests","result":{}}`))
	}))
	defer srv.Close()

	c := New(config.ProvidersConfig{GoPlusBaseURL: srv.URL})
	_, err := c.TokenSecurity(context.Background(), "mint123")
	require.ErrorContains(t, err, "4029")
}
