// Package art finds album cover art using third-party music metadata
// services. Sources are tried in priority order and the first one that
// produces an image wins.
package art

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"
)

// ErrNotFound is returned by a Source when no suitable cover image exists for
// the requested artist and album. The Resolver treats it as a signal to move
// on to the next source.
var ErrNotFound = errors.New("cover art not found")

// Cover is a resolved cover art image together with the URL it came from.
type Cover struct {
	// URL is the canonical location of the image.
	URL string

	// Data is the raw image bytes.
	Data []byte

	// Source names the service the image was found on.
	Source string
}

// Source is a single cover art provider.
type Source interface {
	// Name returns a short identifier for the provider.
	Name() string

	// FrontCover returns the front cover image for an album. Returns
	// ErrNotFound when the provider has no image for it.
	FrontCover(ctx context.Context, artist, album string) (*Cover, error)
}

// Resolver finds cover art by trying a priority-ordered list of sources in
// sequence, short-circuiting on the first success.
type Resolver struct {
	sources []Source
	logger  hclog.Logger
}

// NewResolver creates a Resolver over the given sources. The order of the
// arguments is the lookup priority.
func NewResolver(logger hclog.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{
		sources: sources,
		logger:  logger,
	}
}

// FrontCover returns the front cover for an album from the first source that
// has one. A source failure is logged and the chain continues; ErrNotFound is
// returned only when every source has been exhausted.
func (r *Resolver) FrontCover(ctx context.Context, artist, album string) (*Cover, error) {
	for _, source := range r.sources {
		r.logger.Debug("trying cover art source", "source", source.Name(), "artist", artist, "album", album)

		cover, err := source.FrontCover(ctx, artist, album)
		if err == nil {
			r.logger.Info("found cover art", "source", source.Name(), "url", cover.URL)
			return cover, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		if errors.Is(err, ErrNotFound) {
			r.logger.Debug("no cover art from source", "source", source.Name())
			continue
		}

		r.logger.Warn("cover art source failed", "source", source.Name(), "error", err)
	}

	return nil, ErrNotFound
}
