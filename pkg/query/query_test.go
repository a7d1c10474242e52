package query

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/bookverse/bookverse/pkg/models"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func book(id, title string, rating *int, authors ...string) *models.LibraryItem {
	return &models.LibraryItem{
		ID:        id,
		Title:     title,
		Status:    models.StatusOwned,
		Rating:    rating,
		CreatedAt: base,
		UpdatedAt: base,
		Details:   &models.BookDetails{Authors: authors},
	}
}

func anime(id, title, status string) *models.LibraryItem {
	return &models.LibraryItem{
		ID:        id,
		Title:     title,
		Status:    status,
		CreatedAt: base,
		UpdatedAt: base,
		Details:   &models.AnimeDetails{},
	}
}

func ids(items []*models.LibraryItem) []string {
	out := []string{}
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	s, err := ParseSort("title-asc")
	require.NoError(t, err)
	assert.Equal(t, Sort{SortKeyTitle, Asc}, s)

	s, err = ParseSort("createdAt-desc")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, s)
	assert.Equal(t, "createdAt-desc", s.String())

	s, err = ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, s)

	for _, raw := range []string{"title", "-asc", "title-up", "year-asc"} {
		_, err := ParseSort(raw)
		assert.Error(t, err, raw)
	}
}

func TestApply_StatusFilter(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "Dune", nil),
		anime("2", "Frieren", models.StatusCompleted),
		book("3", "Emma", nil),
		anime("4", "Mushishi", models.StatusWatching),
	}
	items[2].Status = models.StatusCompleted

	all := Apply(items, Options{Status: FilterAll, Sort: Sort{SortKeyTitle, Asc}})
	assert.Len(t, all, 4)

	none := Apply(items, Options{Status: "", Sort: Sort{SortKeyTitle, Asc}})
	assert.Len(t, none, 4)

	completed := Apply(items, Options{Status: models.StatusCompleted, Sort: Sort{SortKeyTitle, Asc}})
	assert.Equal(t, []string{"3", "2"}, ids(completed))

	for _, item := range completed {
		assert.Equal(t, models.StatusCompleted, item.Status)
	}
}

func TestApply_StatusFilterCounts(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	statuses := models.AllStatuses()

	for round := 0; round < 20; round++ {
		items := []*models.LibraryItem{}
		want := map[string]int{}
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			mt := models.MediaTypes()[rng.Intn(len(models.MediaTypes()))]
			vocab := models.Statuses(mt)
			status := vocab[rng.Intn(len(vocab))]
			want[status]++
			items = append(items, &models.LibraryItem{
				ID:        fmt.Sprintf("%d-%d", round, i),
				Title:     fmt.Sprintf("Item %d", rng.Intn(100)),
				Status:    status,
				CreatedAt: base.Add(time.Duration(rng.Intn(1000)) * time.Minute),
				Details:   models.EmptyDetails(mt),
			})
		}

		for _, status := range statuses {
			got := Apply(items, Options{Status: status, Sort: DefaultSort})
			assert.Len(t, got, want[status], "round %d status %q", round, status)
		}
	}
}

func TestApply_StatusFilterAcrossMediaTypes(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("book", "Dune", nil),
		anime("anime", "Frieren", models.StatusCompleted),
	}
	items[0].Status = models.StatusCompleted

	out := Apply(items, Options{Status: models.StatusCompleted})
	assert.ElementsMatch(t, []string{"book", "anime"}, ids(out))
}

func TestApply_MediaTypeFilter(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "Dune", nil),
		anime("2", "Frieren", models.StatusCompleted),
	}
	mt := models.MediaTypeAnime
	out := Apply(items, Options{MediaType: &mt})
	assert.Equal(t, []string{"2"}, ids(out))
}

func TestApply_TextFilter(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "Dune", nil, "Frank Herbert"),
		book("2", "Emma", nil, "Jane Austen"),
		anime("3", "Pokémon", models.StatusWatching),
	}

	assert.Equal(t, []string{"1"}, ids(Apply(items, Options{Text: "DUNE"})))
	assert.Equal(t, []string{"2"}, ids(Apply(items, Options{Text: "austen"})))
	assert.Equal(t, []string{"3"}, ids(Apply(items, Options{Text: "pokemon"})))
	assert.Len(t, Apply(items, Options{Text: "   "}), 3)
	assert.Empty(t, Apply(items, Options{Text: "zzz"}))
}

// P5: absent ratings sort last in both directions.
func TestApply_AbsentRatingsLast(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("b", "B", nil),
		book("a", "A", pointerutil.Int(4)),
	}

	desc := Apply(items, Options{Sort: Sort{SortKeyRating, Desc}})
	assert.Equal(t, []string{"a", "b"}, ids(desc))

	asc := Apply(items, Options{Sort: Sort{SortKeyRating, Asc}})
	assert.Equal(t, []string{"a", "b"}, ids(asc))
}

func TestApply_RatingOrder(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "A", pointerutil.Int(2)),
		book("2", "B", nil),
		book("3", "C", pointerutil.Int(5)),
		book("4", "D", pointerutil.Int(3)),
	}

	assert.Equal(t, []string{"3", "4", "1", "2"}, ids(Apply(items, Options{Sort: Sort{SortKeyRating, Desc}})))
	assert.Equal(t, []string{"1", "4", "3", "2"}, ids(Apply(items, Options{Sort: Sort{SortKeyRating, Asc}})))
}

func TestApply_TitleCaseInsensitive(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "banana", nil),
		book("2", "Apple", nil),
		book("3", "cherry", nil),
	}

	assert.Equal(t, []string{"2", "1", "3"}, ids(Apply(items, Options{Sort: Sort{SortKeyTitle, Asc}})))
	assert.Equal(t, []string{"3", "1", "2"}, ids(Apply(items, Options{Sort: Sort{SortKeyTitle, Desc}})))
}

func TestApply_Stable(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "Same", nil),
		book("2", "same", nil),
		book("3", "SAME", nil),
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(Apply(items, Options{Sort: Sort{SortKeyTitle, Asc}})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Apply(items, Options{Sort: Sort{SortKeyTitle, Desc}})))
}

func TestApply_CreatedAt(t *testing.T) {
	t.Parallel()

	old := book("old", "X", nil)
	mid := book("mid", "Y", nil)
	mid.CreatedAt = base.Add(time.Hour)
	newer := book("new", "Z", nil)
	newer.CreatedAt = base.Add(2 * time.Hour)

	items := []*models.LibraryItem{mid, old, newer}
	assert.Equal(t, []string{"new", "mid", "old"}, ids(Apply(items, Options{})))
	assert.Equal(t, []string{"old", "mid", "new"}, ids(Apply(items, Options{Sort: Sort{SortKeyCreatedAt, Asc}})))
}

func TestApply_StatusSort(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		anime("1", "A", models.StatusWatching),
		anime("2", "B", models.StatusDropped),
		anime("3", "C", models.StatusPlanToWatch),
	}

	assert.Equal(t, []string{"2", "3", "1"}, ids(Apply(items, Options{Sort: Sort{SortKeyStatus, Asc}})))
}

func TestApply_BookViewAuthorTiebreak(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "Collected", nil, "zadie Smith"),
		book("2", "Collected", nil),
		book("3", "Collected", nil, "Anne Carson", "Zed"),
	}

	mt := models.MediaTypeBook
	asc := Apply(items, Options{MediaType: &mt, Sort: Sort{SortKeyTitle, Asc}})
	assert.Equal(t, []string{"2", "3", "1"}, ids(asc))

	desc := Apply(items, Options{MediaType: &mt, Sort: Sort{SortKeyTitle, Desc}})
	assert.Equal(t, []string{"1", "3", "2"}, ids(desc))

	// Without the book view the tie keeps insertion order.
	mixed := Apply(items, Options{Sort: Sort{SortKeyTitle, Asc}})
	assert.Equal(t, []string{"1", "2", "3"}, ids(mixed))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "B", pointerutil.Int(1)),
		book("2", "A", pointerutil.Int(5)),
	}
	before := []*models.LibraryItem{items[0].Clone(), items[1].Clone()}

	out := Apply(items, Options{Sort: Sort{SortKeyTitle, Asc}})
	require.Len(t, out, 2)

	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, before[0], items[0])
	assert.Equal(t, before[1], items[1])
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	items := []*models.LibraryItem{
		book("1", "Dune", pointerutil.Int(4)),
		book("2", "Emma", pointerutil.Int(5)),
		anime("3", "Frieren", models.StatusCompleted),
		anime("4", "Mushishi", models.StatusWatching),
	}
	items[1].Status = models.StatusCompleted

	stats := Summarize(items)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 2, stats.Rated)
	require.NotNil(t, stats.AverageRating)
	assert.InDelta(t, 4.5, *stats.AverageRating, 0.0001)

	require.Len(t, stats.ByMediaType, 4)
	books := stats.ByMediaType[0]
	assert.Equal(t, models.MediaTypeBook, books.MediaType)
	assert.Equal(t, 2, books.Total)
	assert.Equal(t, []StatusCount{
		{models.StatusOwned, 1},
		{models.StatusWishlist, 0},
		{models.StatusLoaned, 0},
		{models.StatusCompleted, 1},
	}, books.Statuses)

	empty := Summarize(nil)
	assert.Zero(t, empty.Total)
	assert.Nil(t, empty.AverageRating)
}
