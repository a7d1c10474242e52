package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsShortQuery(t *testing.T) {
	t.Parallel()

	assert.True(t, IsShortQuery(""))
	assert.True(t, IsShortQuery("du"))
	assert.True(t, IsShortQuery("  du  "))
	assert.True(t, IsShortQuery("사랑"))
	assert.False(t, IsShortQuery("dun"))
	assert.False(t, IsShortQuery("사랑의"))
}

func TestRequestNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{5, 5},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		r := Request{Query: "  dune ", Limit: tt.limit}.Normalized()
		assert.Equal(t, "dune", r.Query)
		assert.Equal(t, tt.want, r.Limit)
	}
}

func TestDedupeBy(t *testing.T) {
	t.Parallel()

	type rec struct {
		id   int
		name string
	}
	in := []rec{{1, "a"}, {2, "b"}, {1, "c"}, {0, "d"}, {0, "e"}, {3, "f"}}

	out := DedupeBy(in, func(r rec) (int, bool) { return r.id, r.id != 0 })

	names := []string{}
	for _, r := range out {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"a", "b", "d", "e", "f"}, names)
}

func TestCap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{1, 2}, Cap([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, Cap([]int{1}, 5))
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Dune", FirstNonEmpty("", "  ", " Dune ", "Other"))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestFetchJSON(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"name": "dune"}`))
	}))
	defer ts.Close()

	var dst struct {
		Name string `json:"name"`
	}
	err := FetchJSON(context.Background(), ts.Client(), "Test", ts.URL, http.Header{"Authorization": {"Bearer t"}}, &dst)
	require.NoError(t, err)
	assert.Equal(t, "dune", dst.Name)
}

func TestFetchJSON_Malformed(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><body>Please sign in</body></html>`))
	}))
	defer ts.Close()

	var dst map[string]interface{}
	err := FetchJSON(context.Background(), ts.Client(), "Test", ts.URL, nil, &dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Contains(t, err.Error(), "text/html")

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusOK, perr.StatusCode)
}

func TestFetchJSON_CanceledContext(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst map[string]interface{}
	err := FetchJSON(ctx, ts.Client(), "Test", ts.URL, nil, &dst)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.StatusCode)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestError(t *testing.T) {
	t.Parallel()

	err := MissingAPIKey("TMDb")
	assert.True(t, err.IsCredentialError())
	assert.Equal(t, "TMDb search failed (HTTP 401): api key is not configured", err.Error())

	err = &Error{Provider: "Jikan", Err: errors.New("dial tcp: refused")}
	assert.False(t, err.IsCredentialError())
	assert.Equal(t, "Jikan search failed: dial tcp: refused", err.Error())

	assert.True(t, (&Error{StatusCode: http.StatusForbidden}).IsCredentialError())
}
