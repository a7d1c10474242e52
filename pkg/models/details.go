package models

// Details holds the fields that only apply to one media type. It is a closed
// union: the only implementations are the four *Details types in this file.
type Details interface {
	MediaType() MediaType
	clone() Details
}

type BookDetails struct {
	Authors       []string
	Subtitle      *string
	OpenLibraryID *string
	ISBN          []string
	PublishYear   *int
	Pages         *int
}

type MovieDetails struct {
	TMDBID      *int
	ReleaseYear *int
}

type AnimeDetails struct {
	JikanMalID      *int
	Episodes        *int
	FavoriteEpisode *string
}

type KDramaDetails struct {
	TMDBID          *int
	Episodes        *int
	ReleaseYear     *int
	FavoriteEpisode *string
}

func (*BookDetails) MediaType() MediaType { return MediaTypeBook }
func (*MovieDetails) MediaType() MediaType { return MediaTypeMovie }
func (*AnimeDetails) MediaType() MediaType { return MediaTypeAnime }
func (*KDramaDetails) MediaType() MediaType { return MediaTypeKDrama }

func (d *BookDetails) clone() Details {
	c := &BookDetails{
		Subtitle:      cloneString(d.Subtitle),
		OpenLibraryID: cloneString(d.OpenLibraryID),
		PublishYear:   cloneInt(d.PublishYear),
		Pages:         cloneInt(d.Pages),
	}
	if d.Authors != nil {
		c.Authors = append([]string{}, d.Authors...)
	}
	if d.ISBN != nil {
		c.ISBN = append([]string{}, d.ISBN...)
	}
	return c
}

func (d *MovieDetails) clone() Details {
	return &MovieDetails{
		TMDBID:      cloneInt(d.TMDBID),
		ReleaseYear: cloneInt(d.ReleaseYear),
	}
}

func (d *AnimeDetails) clone() Details {
	return &AnimeDetails{
		JikanMalID:      cloneInt(d.JikanMalID),
		Episodes:        cloneInt(d.Episodes),
		FavoriteEpisode: cloneString(d.FavoriteEpisode),
	}
}

func (d *KDramaDetails) clone() Details {
	return &KDramaDetails{
		TMDBID:          cloneInt(d.TMDBID),
		Episodes:        cloneInt(d.Episodes),
		ReleaseYear:     cloneInt(d.ReleaseYear),
		FavoriteEpisode: cloneString(d.FavoriteEpisode),
	}
}

// CloneDetails returns a deep copy of d. A nil d returns nil.
func CloneDetails(d Details) Details {
	if d == nil {
		return nil
	}
	return d.clone()
}

// EmptyDetails returns a zero-valued variant for the media type, or nil if mt
// is unknown.
func EmptyDetails(mt MediaType) Details {
	switch mt {
	case MediaTypeBook:
		return &BookDetails{Authors: []string{}}
	case MediaTypeMovie:
		return &MovieDetails{}
	case MediaTypeAnime:
		return &AnimeDetails{}
	case MediaTypeKDrama:
		return &KDramaDetails{}
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
