package openlibrary

import (
	"github.com/segmentio/encoding/json"
)

const searchFields = "key,title,subtitle,author_name,cover_i,isbn,first_publish_year,number_of_pages_median"

type searchResponse struct {
	Docs []Doc `json:"docs"`
}

// Doc is one work in an Open Library search response.
type Doc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	Subtitle            string   `json:"subtitle"`
	AuthorName          []string `json:"author_name"`
	CoverI              *int     `json:"cover_i"`
	ISBN                []string `json:"isbn"`
	FirstPublishYear    *int     `json:"first_publish_year"`
	NumberOfPagesMedian *int     `json:"number_of_pages_median"`
}

type work struct {
	Description json.RawMessage `json:"description"`
}

// text reads a field that is either a plain string or a typed
// {"type": "/type/text", "value": "..."} object.
func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &typed); err == nil {
		return typed.Value
	}
	return ""
}
