package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookverse/bookverse/pkg/binder"
	"github.com/bookverse/bookverse/pkg/errcodes"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, store *Store) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	RegisterRoutes(e, store)
	return e
}

func doRequest(e *echo.Echo, method, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func decodeMutation(t *testing.T, rr *httptest.ResponseRecorder) MutationResponse {
	t.Helper()
	resp := MutationResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	return payload.Error.Message
}

func TestHandlerCreate(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newTestKV(t))
	e := newTestServer(t, store)

	rr := doRequest(e, http.MethodPost, "/library", `{"media_type":"Book","title":" Dune ","authors":["Frank Herbert"],"status":"Owned","rating":0}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decodeMutation(t, rr)
	require.NotNil(t, resp.Item)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, "Dune", resp.Item.Title)
	assert.Nil(t, resp.Item.Rating)
	assert.Equal(t, []string{"Frank Herbert"}, resp.Item.Authors())
	assert.Contains(t, rr.Body.String(), `"display_cover_url":"/static/placeholders/book.svg"`)

	assert.Len(t, store.List(), 1)
}

func TestHandlerCreate_Validation(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newTestKV(t))
	e := newTestServer(t, store)

	cases := []struct {
		payload string
		message string
	}{
		{`{"media_type":"Book","title":""}`, `"title" is required`},
		{`{"media_type":"Podcast","title":"Serial"}`, `"media_type" must be one of the following`},
		{`{"media_type":"Book","title":"Dune","status":"Watching"}`, `"status"`},
		{`{"media_type":"Movie","title":"Heat","authors":["Michael Mann"]}`, `"authors" doesn't apply to Movie`},
		{`{"media_type":"Book","title":"Dune","rating":7}`, `"rating" must be less than or equal to 5`},
		{`{"media_type":"Book","title":"Dune","id":"abc"}`, `Unknown Parameter "id"`},
	}

	for _, tt := range cases {
		rr := doRequest(e, http.MethodPost, "/library", tt.payload)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, tt.payload)
		assert.Contains(t, errorMessage(t, rr), tt.message, tt.payload)
	}
	assert.Empty(t, store.List())
}

func TestHandlerAccept(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newTestKV(t))
	e := newTestServer(t, store)

	payload := `{"result":{"media_type":"Movie","title":"Heat","cover_url":"https://image.tmdb.org/t/p/w500/heat.jpg","tmdb_id":949,"release_year":1995}}`
	rr := doRequest(e, http.MethodPost, "/library/accept", payload)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decodeMutation(t, rr)
	assert.Equal(t, models.StatusOwned, resp.Item.Status)
	movie, ok := resp.Item.Details.(*models.MovieDetails)
	require.True(t, ok)
	assert.Equal(t, 949, *movie.TMDBID)
	assert.Equal(t, 1995, *movie.ReleaseYear)
}

func TestHandlerList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t, newTestKV(t))
	e := newTestServer(t, store)

	_, err := store.Create(ctx, CreateItemOptions{Title: "Dune", Status: models.StatusCompleted, Details: &models.BookDetails{}})
	require.NoError(t, err)
	_, err = store.Create(ctx, CreateItemOptions{Title: "Frieren", Status: models.StatusCompleted, Details: &models.AnimeDetails{}})
	require.NoError(t, err)
	_, err = store.Create(ctx, CreateItemOptions{Title: "Heat", Details: &models.MovieDetails{}})
	require.NoError(t, err)

	rr := doRequest(e, http.MethodGet, "/library?status=Completed&sort=title-asc", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp ListItemsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Dune", resp.Items[0].Title)
	assert.Equal(t, "Frieren", resp.Items[1].Title)

	rr = doRequest(e, http.MethodGet, "/library", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Heat", resp.Items[0].Title)

	rr = doRequest(e, http.MethodGet, "/library?media_type=Anime&search=frie", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Frieren", resp.Items[0].Title)

	rr = doRequest(e, http.MethodGet, "/library?sort=popularity-desc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandlerStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t, newTestKV(t))
	e := newTestServer(t, store)

	_, err := store.Create(ctx, dune())
	require.NoError(t, err)

	rr := doRequest(e, http.MethodGet, "/library/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)
}

func TestHandlerRetrieveUpdateDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t, newTestKV(t))
	e := newTestServer(t, store)

	item, err := store.Create(ctx, dune())
	require.NoError(t, err)

	rr := doRequest(e, http.MethodGet, "/library/"+item.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Dune"`)

	rr = doRequest(e, http.MethodGet, "/library/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Library item not found.", errorMessage(t, rr))

	rr = doRequest(e, http.MethodPut, "/library/"+item.ID, `{"media_type":"Book","title":"Dune","status":"Completed","rating":5}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeMutation(t, rr)
	assert.Equal(t, models.StatusCompleted, resp.Item.Status)
	assert.Equal(t, 5, *resp.Item.Rating)
	assert.Equal(t, item.CreatedAt.Unix(), resp.Item.CreatedAt.Unix())

	rr = doRequest(e, http.MethodPut, "/library/"+item.ID, `{"media_type":"Movie","title":"Dune"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doRequest(e, http.MethodPut, "/library/missing", `{"media_type":"Book","title":"Dune"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(e, http.MethodDelete, "/library/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(e, http.MethodDelete, "/library/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, store.List())
}

func TestHandlerPersistenceWarning(t *testing.T) {
	t.Parallel()
	kv := &flakyKV{Store: newTestKV(t), failSet: true}
	store := newTestStore(t, kv)
	e := newTestServer(t, store)

	rr := doRequest(e, http.MethodPost, "/library", `{"media_type":"Anime","title":"Mushishi"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decodeMutation(t, rr)
	require.NotNil(t, resp.Item)
	assert.Equal(t, persistenceWarning, resp.Warning)

	rr = doRequest(e, http.MethodDelete, "/library/"+resp.Item.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, persistenceWarning, decodeMutation(t, rr).Warning)
}
