package deeplynx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

func TestFetchOntology(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ontology", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{
			"nodes": [
				{"id": "a", "name": "A", "type": "T"},
				{"id": "b", "name": "B", "type": "T"}
			],
			"relationships": [{"source": "a", "target": "b"}]
		}`))
	})

	got, err := client.FetchOntology(context.Background())
	require.NoError(t, err)

	want := GraphSnapshot{
		Nodes: []GraphNode{
			{ID: "a", Name: "A", Type: "T"},
			{ID: "b", Name: "B", Type: "T"},
		},
		Relationships: []GraphEdge{{Source: "a", Target: "b"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchOntologyCoercesMalformedCollections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{}`},
		{"null fields", `{"nodes": null, "relationships": null}`},
		{"non-sequence fields", `{"nodes": "oops", "relationships": 42}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			got, err := client.FetchOntology(context.Background())
			require.NoError(t, err)
			require.NotNil(t, got.Nodes)
			require.NotNil(t, got.Relationships)
			assert.Empty(t, got.Nodes)
			assert.Empty(t, got.Relationships)
		})
	}
}

func TestFetchOntologyDropsEdgesWithUnknownEndpoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"nodes": [{"id": "a", "name": "A", "type": "T"}],
			"relationships": [
				{"source": "a", "target": "ghost"},
				{"source": "ghost", "target": "a"}
			]
		}`))
	})

	got, err := client.FetchOntology(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Nodes, 1)
	assert.Empty(t, got.Relationships)
}

func TestFetchErrorCarriesServerDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "db down"}`))
	})

	_, err := client.FetchOntology(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	assert.Equal(t, "db down", fe.Detail)
}

func TestFetchErrorFallsBackToStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.FetchDataSources(context.Background())
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
	assert.Contains(t, fe.Detail, "502")
}

func TestFetchErrorOnTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", zap.NewNop())

	_, err := client.FetchOntology(context.Background())
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
	assert.NotEmpty(t, fe.Detail)
}

func TestFetchDataSources(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasources", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 1, "name": "S1", "type": "csv", "status": "active"}]`))
	})

	got, err := client.FetchDataSources(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, DataSource{ID: 1, Name: "S1", Type: "csv", Status: "active"}, got[0])
}

func TestFetchTypeMappings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/typemappings", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 7, "sourceType": "csv_row", "targetType": "Asset", "rules": "direct"}]`))
	})

	got, err := client.FetchTypeMappings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, TypeMapping{ID: 7, SourceType: "csv_row", TargetType: "Asset", Rules: "direct"}, got[0])
}

func TestBaseURLNormalization(t *testing.T) {
	client := NewClient("http://example.com/", zap.NewNop())
	assert.Equal(t, "http://example.com", client.BaseURL())

	client = NewClient("", zap.NewNop())
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
}
