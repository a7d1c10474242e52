package search

import (
	"github.com/pkg/errors"
)

var (
	// ErrCapabilityDisabled means the media type's provider is switched off
	// in settings.
	ErrCapabilityDisabled = errors.New("search capability is disabled")
	// ErrSuperseded means a newer search for the same session started before
	// this one finished. Its results were discarded.
	ErrSuperseded = errors.New("search superseded by a newer one")
	// ErrUnsupportedMediaType means no provider is registered for the media type.
	ErrUnsupportedMediaType = errors.New("no provider for media type")
)
