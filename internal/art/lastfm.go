package art

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/coverhue/coverhue/internal/util/http"
)

const (
	lastFMEndpoint = "%s/2.0/"

	// lastFMMaxRetries bounds the image download attempts. The Last.fm CDN
	// intermittently serves errors for images it does have.
	lastFMMaxRetries = 3
	lastFMRetryDelay = 2 * time.Second
)

// lastFMSizeOrder lists image sizes from most to least desirable.
var lastFMSizeOrder = []string{"mega", "extralarge", "large", "medium", "small"}

// LastFM finds cover art through the Last.fm album.getinfo API. It requires
// an API key; without one every lookup reports ErrNotFound.
type LastFM struct {
	apiKey  string
	apiHost string
	logger  hclog.Logger
}

// NewLastFM returns a LastFM source using the given API key.
func NewLastFM(apiKey string, logger hclog.Logger) *LastFM {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LastFM{
		apiKey:  apiKey,
		apiHost: "https://ws.audioscrobbler.com",
		logger:  logger,
	}
}

// SetAPIHost sets the Last.fm API host. Only useful for tests.
func (l *LastFM) SetAPIHost(host string) {
	l.apiHost = host
}

// Name implements Source.
func (l *LastFM) Name() string {
	return "lastfm"
}

// FrontCover implements Source.
func (l *LastFM) FrontCover(ctx context.Context, artist, album string) (*Cover, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("%w: no Last.fm API key configured", ErrNotFound)
	}

	imageURL, err := l.coverURL(ctx, artist, album)
	if err != nil {
		return nil, err
	}

	data, err := l.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	return &Cover{
		URL:    imageURL,
		Data:   data,
		Source: l.Name(),
	}, nil
}

// coverURL asks the album.getinfo API for the album's largest image URL.
func (l *LastFM) coverURL(ctx context.Context, artist, album string) (string, error) {
	endpoint := fmt.Sprintf(lastFMEndpoint, l.apiHost)
	query := url.Values{}
	query.Set("method", "album.getinfo")
	query.Set("api_key", l.apiKey)
	query.Set("artist", artist)
	query.Set("album", album)
	query.Set("format", "json")

	body, err := httputil.Fetch(ctx, endpoint+"?"+query.Encode(), httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("album info request: %w", err)
	}

	var result lfmAlbumInfo
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding album info response: %w", err)
	}

	if result.Error != 0 {
		l.logger.Debug("last.fm reported error", "code", result.Error, "message", result.Message)
		return "", ErrNotFound
	}

	bySize := make(map[string]string, len(result.Album.Images))
	for _, img := range result.Album.Images {
		if img.URL != "" {
			bySize[img.Size] = img.URL
		}
	}

	for _, size := range lastFMSizeOrder {
		if imageURL, ok := bySize[size]; ok {
			return imageURL, nil
		}
	}

	return "", ErrNotFound
}

// download fetches the image bytes, retrying transient failures.
func (l *LastFM) download(ctx context.Context, imageURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < lastFMMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(lastFMRetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, err := httputil.Fetch(ctx, imageURL, httputil.FetchOptions{})
		if err == nil {
			return data, nil
		}
		lastErr = err
		l.logger.Debug("cover image download failed", "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("downloading cover image: %w", lastErr)
}

// The following structures decode only the parts of the Last.fm JSON API
// response that the source needs.
type lfmAlbumInfo struct {
	Album   lfmAlbum `json:"album"`
	Error   int      `json:"error"`
	Message string   `json:"message"`
}

type lfmAlbum struct {
	Name   string     `json:"name"`
	Images []lfmImage `json:"image"`
}

type lfmImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}
