package jikan

type searchResponse struct {
	Data []Anime `json:"data"`
}

// Anime is one entry of /anime search results.
type Anime struct {
	MalID        int     `json:"mal_id"`
	Title        string  `json:"title"`
	TitleEnglish *string `json:"title_english"`
	Images       struct {
		JPG struct {
			ImageURL      *string `json:"image_url"`
			LargeImageURL *string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Episodes *int    `json:"episodes"`
	Synopsis *string `json:"synopsis"`
	Year     *int    `json:"year"`
}
