package query

import (
	"strings"

	"github.com/pkg/errors"
)

type SortKey string

const (
	SortKeyCreatedAt SortKey = "createdAt"
	SortKeyTitle     SortKey = "title"
	SortKeyRating    SortKey = "rating"
	SortKeyStatus    SortKey = "status"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort shows the most recently added items first.
var DefaultSort = Sort{Key: SortKeyCreatedAt, Direction: Desc}

func (s Sort) String() string {
	return string(s.Key) + "-" + string(s.Direction)
}

func (s Sort) IsValid() bool {
	switch s.Key {
	case SortKeyCreatedAt, SortKeyTitle, SortKeyRating, SortKeyStatus:
	default:
		return false
	}
	return s.Direction == Asc || s.Direction == Desc
}

// ParseSort reads a "key-direction" pair such as "title-asc". An empty string
// returns DefaultSort.
func ParseSort(raw string) (Sort, error) {
	if raw == "" {
		return DefaultSort, nil
	}
	i := strings.LastIndex(raw, "-")
	if i <= 0 {
		return Sort{}, errors.Errorf("invalid sort %q", raw)
	}
	s := Sort{Key: SortKey(raw[:i]), Direction: Direction(raw[i+1:])}
	if !s.IsValid() {
		return Sort{}, errors.Errorf("invalid sort %q", raw)
	}
	return s, nil
}
