package feargreed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash-api/pkg/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL))
}

func TestLatest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fng/", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"value":"72","value_classification":"Greed"}]}`)
	})

	index, err := client.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 72, index.Value)
	assert.Equal(t, "Greed", index.Classification)
}

func TestLatestEmptyPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})

	_, err := client.Latest(context.Background())
	require.Error(t, err)
	assert.True(t, upstream.IsUpstream(err))
}

func TestLatestMalformedValue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"value":"seventy","value_classification":"Greed"}]}`)
	})

	_, err := client.Latest(context.Background())
	require.Error(t, err)
}
