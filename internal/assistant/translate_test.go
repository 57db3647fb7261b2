package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTranslator(t *testing.T, handler http.HandlerFunc) *Translator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr := NewTranslator()
	tr.baseURL = srv.URL
	return tr
}

func TestTranslatorJoinsSegments(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "en", r.URL.Query().Get("tl"))
		w.Write([]byte(`[[["Hello, ","Hola, ",null],["how are you?","¿cómo estás?",null]],null,"es"]`))
	})

	got := tr.ToEnglish(context.Background(), "Hola, ¿cómo estás?")
	require.Equal(t, "Hello, how are you?", got)
}

func TestTranslatorFallsBackOnError(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	})

	got := tr.ToEnglish(context.Background(), "bonjour")
	require.Equal(t, "bonjour", got)
}

func TestTranslatorFallsBackOnMalformedBody(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	got := tr.ToEnglish(context.Background(), "hallo")
	require.Equal(t, "hallo", got)
}
