package art

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/coverhue/coverhue/internal/util/http"
)

const discogsSearchEndpoint = "%s/database/search"

// Discogs finds cover art through the Discogs release search API. It requires
// a personal access token; without one every lookup reports ErrNotFound.
type Discogs struct {
	token   string
	apiHost string
	logger  hclog.Logger
}

// NewDiscogs returns a Discogs source using the given personal access token.
func NewDiscogs(token string, logger hclog.Logger) *Discogs {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Discogs{
		token:   token,
		apiHost: "https://api.discogs.com",
		logger:  logger,
	}
}

// SetAPIHost sets the Discogs API host. Only useful for tests.
func (d *Discogs) SetAPIHost(host string) {
	d.apiHost = host
}

// Name implements Source.
func (d *Discogs) Name() string {
	return "discogs"
}

// FrontCover implements Source.
func (d *Discogs) FrontCover(ctx context.Context, artist, album string) (*Cover, error) {
	if d.token == "" {
		return nil, fmt.Errorf("%w: no Discogs token configured", ErrNotFound)
	}

	endpoint := fmt.Sprintf(discogsSearchEndpoint, d.apiHost)
	query := url.Values{}
	query.Set("artist", artist)
	query.Set("release_title", album)
	query.Set("type", "release")

	body, err := httputil.Fetch(ctx, endpoint+"?"+query.Encode(), httputil.FetchOptions{
		Headers: map[string]string{
			"Authorization": fmt.Sprintf("Discogs token=%s", d.token),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("release search request: %w", err)
	}

	var result dcSearch
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding release search response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, ErrNotFound
	}

	imageURL := result.Results[0].CoverImage
	if imageURL == "" {
		return nil, ErrNotFound
	}

	data, err := httputil.Fetch(ctx, imageURL, httputil.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("downloading cover image: %w", err)
	}

	return &Cover{
		URL:    imageURL,
		Data:   data,
		Source: d.Name(),
	}, nil
}

// dcSearch matches the Discogs JSON representation of a release search. It
// defines only the strictly required fields.
type dcSearch struct {
	Results []dcSearchResult `json:"results"`
}

type dcSearchResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	CoverImage string `json:"cover_image"`
}
