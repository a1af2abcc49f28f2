// Package store persists generated palettes as named records in a JSON index.
//
// The index is a single file, index.json, under the store directory. Each
// record carries the palette's hexcodes inline; records may additionally
// point at a standalone palette file through their path field. Saving a
// record under an existing name replaces the prior record.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

const indexFileName = "index.json"

// ErrRecordNotFound is returned when no record with the requested name
// exists in the store.
var ErrRecordNotFound = errors.New("palette record not found")

// Record is one persisted palette with its source metadata. Path points at a
// standalone palette file when the palette was also written outside the
// index; it is null otherwise.
type Record struct {
	Name     string   `json:"name"`
	Artist   string   `json:"artist"`
	Album    string   `json:"album"`
	NColors  int      `json:"n_colors"`
	ImageURL string   `json:"image_url"`
	Hexcodes []string `json:"hexcodes"`
	Path     *string  `json:"path"`
}

// Store reads and writes palette records under a single directory. All index
// mutations are read-modify-write under a mutex so concurrent saves cannot
// corrupt the index.
type Store struct {
	mu     sync.Mutex
	fs     afero.Fs
	dir    string
	logger hclog.Logger
}

// New returns a Store rooted at dir on the given filesystem.
func New(fs afero.Fs, dir string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// DefaultName derives a record name from the artist, album and colour count.
// It lowercases both and replaces spaces with underscores, producing names
// such as "radiohead_ok_computer_4".
func DefaultName(artist, album string, nColors int) string {
	slug := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	}
	return fmt.Sprintf("%s_%s_%d", slug(artist), slug(album), nColors)
}

// Save writes a record into the index, replacing any existing record with
// the same name.
func (s *Store) Save(rec Record) error {
	if rec.Name == "" {
		return errors.New("record name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readIndex()
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].Name == rec.Name {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	s.logger.Debug("saving palette record", "name", rec.Name, "replaced", replaced)
	return s.writeIndex(records)
}

// Get returns the record with the given name. If the record carries no
// inline hexcodes but points at a palette file, the hexcodes are read from
// that file.
func (s *Store) Get(name string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readIndex()
	if err != nil {
		return Record{}, err
	}

	for _, rec := range records {
		if rec.Name != name {
			continue
		}
		if len(rec.Hexcodes) == 0 && rec.Path != nil {
			hexcodes, err := s.ReadPaletteFile(*rec.Path)
			if err != nil {
				return Record{}, fmt.Errorf("reading palette file for %q: %w", name, err)
			}
			rec.Hexcodes = hexcodes
		}
		return rec, nil
	}

	return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, name)
}

// List returns one page of records ordered by name. Pages are numbered from
// one; a page past the end is empty, not an error.
func (s *Store) List(page, perPage int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	return paginate(records, page, perPage)
}

// FindByColourCount returns one page of records whose palettes have exactly
// nColors colours, ordered by name.
func (s *Store) FindByColourCount(nColors, page, perPage int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.NColors == nColors {
			matched = append(matched, rec)
		}
	}

	return paginate(matched, page, perPage)
}

// WritePaletteFile writes hexcodes as a standalone JSON array to path. The
// path is independent of the store directory.
func (s *Store) WritePaletteFile(path string, hexcodes []string) error {
	data, err := json.MarshalIndent(hexcodes, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding palette file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating palette file directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing palette file: %w", err)
	}
	return nil
}

// ReadPaletteFile reads a standalone palette file written by
// WritePaletteFile.
func (s *Store) ReadPaletteFile(path string) ([]string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	var hexcodes []string
	if err := json.Unmarshal(data, &hexcodes); err != nil {
		return nil, fmt.Errorf("decoding palette file: %w", err)
	}
	return hexcodes, nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFileName)
}

func (s *Store) readIndex() ([]Record, error) {
	data, err := afero.ReadFile(s.fs, s.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading palette index: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding palette index: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (s *Store) writeIndex(records []Record) error {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding palette index: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.indexPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing palette index: %w", err)
	}
	return nil
}

func paginate(records []Record, page, perPage int) ([]Record, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", page)
	}
	if perPage < 1 {
		return nil, fmt.Errorf("per-page must be at least 1, got %d", perPage)
	}

	start := (page - 1) * perPage
	if start >= len(records) {
		return nil, nil
	}
	end := start + perPage
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], nil
}
