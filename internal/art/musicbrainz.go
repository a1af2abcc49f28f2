package art

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pborman/uuid"
	cca "gopkg.in/mineo/gocaa.v1"

	httputil "github.com/coverhue/coverhue/internal/util/http"
)

const (
	musicBrainzReleaseGroupEndpoint = "%s/ws/2/release-group"
	musicBrainzReleaseEndpoint      = "%s/ws/2/release"
	musicBrainzReleaseGroupQuery    = "releasegroup:%s AND artist:%s"

	// coverArtURLTemplate is the canonical Cover Art Archive location of a
	// release's 500px front image.
	coverArtURLTemplate = "https://coverartarchive.org/release/%s/front-500"
)

// CAAClient represents a Cover Art Archive client for getting a release front
// image. It exists so tests can substitute the real client.
type CAAClient interface {
	GetReleaseFront(mbid uuid.UUID, size int) (image cca.CoverArtImage, err error)
}

// MusicBrainz finds cover art through the MusicBrainz metadata database and
// the Cover Art Archive. Lookups go in three steps: search release groups
// matching the artist and album, pick the best match by fuzzy name
// comparison, then fetch the front image of the group's first release from
// the Cover Art Archive.
//
// The kind people at MusicBrainz provide their API at no cost and ask
// applications to throttle themselves to at most one request per second.
// More info: https://musicbrainz.org/doc/XML_Web_Service/Rate_Limiting
// The delayer enforces that: no more than one API request per delay interval.
type MusicBrainz struct {
	mu sync.Mutex

	delay     time.Duration
	delayer   *time.Timer
	useragent string
	caaClient CAAClient
	apiHost   string
	logger    hclog.Logger
}

// NewMusicBrainz returns a MusicBrainz source. The useragent identifies the
// application to the MusicBrainz API; delay throttles requests to it.
func NewMusicBrainz(useragent string, delay time.Duration, logger hclog.Logger) *MusicBrainz {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &MusicBrainz{
		delay:     delay,
		delayer:   time.NewTimer(delay),
		useragent: useragent,
		caaClient: cca.NewCAAClient(useragent),
		apiHost:   "https://musicbrainz.org",
		logger:    logger,
	}
}

// SetCAAClient sets the underlying CAAClient. Only useful for tests.
func (m *MusicBrainz) SetCAAClient(client CAAClient) {
	m.caaClient = client
}

// SetAPIHost sets the MusicBrainz API host. Only useful for tests.
func (m *MusicBrainz) SetAPIHost(host string) {
	m.apiHost = host
}

// Name implements Source.
func (m *MusicBrainz) Name() string {
	return "musicbrainz"
}

// FrontCover implements Source.
func (m *MusicBrainz) FrontCover(ctx context.Context, artist, album string) (*Cover, error) {
	groupID, err := m.searchReleaseGroup(ctx, artist, album)
	if err != nil {
		return nil, err
	}

	releaseID, err := m.browseFirstRelease(ctx, groupID)
	if err != nil {
		return nil, err
	}

	img, err := m.caaClient.GetReleaseFront(cca.StringToUUID(releaseID), cca.ImageSize500)
	if err != nil {
		var httpErr cca.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching cover art archive image: %w", err)
	}

	return &Cover{
		URL:    fmt.Sprintf(coverArtURLTemplate, releaseID),
		Data:   img.Data,
		Source: m.Name(),
	}, nil
}

// searchReleaseGroup queries the MusicBrainz release-group search API and
// returns the ID of the best fuzzy match for "artist - album". An album may
// have several release groups; the name comparison weeds out the search hits
// that merely share a few words with the query.
func (m *MusicBrainz) searchReleaseGroup(ctx context.Context, artist, album string) (string, error) {
	endpoint := fmt.Sprintf(musicBrainzReleaseGroupEndpoint, m.apiHost)
	query := url.Values{}
	query.Set("query", fmt.Sprintf(musicBrainzReleaseGroupQuery, album, artist))
	query.Set("limit", "5")
	query.Set("fmt", "json")

	body, err := m.get(ctx, endpoint+"?"+query.Encode())
	if err != nil {
		return "", fmt.Errorf("release group search: %w", err)
	}

	var result mbReleaseGroupSearch
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding release group search response: %w", err)
	}

	want := fmt.Sprintf("%s - %s", artist, album)
	bestID := ""
	bestRatio := 0

	for _, group := range result.ReleaseGroups {
		if len(group.ArtistCredit) == 0 {
			continue
		}
		candidate := fmt.Sprintf("%s - %s", group.ArtistCredit[0].Name, group.Title)
		ratio := matchRatio(want, candidate)
		if ratio > bestRatio && ratio >= matchThreshold {
			bestRatio = ratio
			bestID = group.ID
		}
	}

	if bestID == "" {
		m.logger.Debug("no release group matched", "artist", artist, "album", album)
		return "", ErrNotFound
	}

	return bestID, nil
}

// browseFirstRelease returns the ID of the first release in a release group.
// Generally all releases of a group carry the same cover art, so any of them
// will do.
func (m *MusicBrainz) browseFirstRelease(ctx context.Context, groupID string) (string, error) {
	endpoint := fmt.Sprintf(musicBrainzReleaseEndpoint, m.apiHost)
	query := url.Values{}
	query.Set("release-group", groupID)
	query.Set("limit", "1")
	query.Set("fmt", "json")

	body, err := m.get(ctx, endpoint+"?"+query.Encode())
	if err != nil {
		return "", fmt.Errorf("release browse: %w", err)
	}

	var result mbReleaseBrowse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding release browse response: %w", err)
	}

	if len(result.Releases) == 0 {
		return "", ErrNotFound
	}

	return result.Releases[0].ID, nil
}

// get performs a throttled GET request against the MusicBrainz API.
func (m *MusicBrainz) get(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.delayer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer m.delayer.Reset(m.delay)

	return httputil.Fetch(ctx, url, httputil.FetchOptions{
		Headers: map[string]string{"User-Agent": m.useragent},
	})
}

// The following structures decode only the parts of the MusicBrainz JSON API
// responses that the source needs.
type mbReleaseGroupSearch struct {
	ReleaseGroups []mbReleaseGroup `json:"release-groups"`
}

type mbReleaseGroup struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Score        int              `json:"score"`
	ArtistCredit []mbArtistCredit `json:"artist-credit"`
}

type mbArtistCredit struct {
	Name string `json:"name"`
}

type mbReleaseBrowse struct {
	Releases []mbRelease `json:"releases"`
}

type mbRelease struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
