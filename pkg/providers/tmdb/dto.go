package tmdb

type searchResponse[T any] struct {
	Page    int `json:"page"`
	Results []T `json:"results"`
}

// MovieResult is one entry of /search/movie.
type MovieResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	PosterPath    *string `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
}

// TVResult is one entry of /search/tv.
type TVResult struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	OriginalName  string   `json:"original_name"`
	PosterPath    *string  `json:"poster_path"`
	FirstAirDate  string   `json:"first_air_date"`
	Overview      string   `json:"overview"`
	OriginCountry []string `json:"origin_country"`
}
