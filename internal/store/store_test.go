package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"
)

func newTestStore() *Store {
	return New(afero.NewMemMapFs(), "/palettes", nil)
}

func testRecord(name string, nColors int) Record {
	hexcodes := make([]string, nColors)
	for i := range hexcodes {
		hexcodes[i] = fmt.Sprintf("#%06x", i*0x111111)
	}
	return Record{
		Name:     name,
		Artist:   "Radiohead",
		Album:    "OK Computer",
		NColors:  nColors,
		ImageURL: "https://example.com/cover.jpg",
		Hexcodes: hexcodes,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := newTestStore()

	rec := testRecord("radiohead_ok_computer_4", 4)
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := s.Get("radiohead_ok_computer_4")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.NColors != 4 {
		t.Errorf("NColors = %d, want 4", got.NColors)
	}
	if len(got.Hexcodes) != 4 {
		t.Fatalf("got %d hexcodes, want 4", len(got.Hexcodes))
	}
	for i, hex := range got.Hexcodes {
		if hex != rec.Hexcodes[i] {
			t.Errorf("hexcode %d = %s, want %s", i, hex, rec.Hexcodes[i])
		}
	}
}

func TestSaveReplacesExistingName(t *testing.T) {
	s := newTestStore()

	if err := s.Save(testRecord("same_name", 4)); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}

	updated := testRecord("same_name", 6)
	if err := s.Save(updated); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	records, err := s.List(1, 100)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records after replacing save, want 1", len(records))
	}
	if records[0].NColors != 6 {
		t.Errorf("NColors = %d, want the replacement's 6", records[0].NColors)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	s := newTestStore()
	if err := s.Save(Record{}); err == nil {
		t.Error("expected error for empty record name")
	}
}

func TestGetMissingRecord(t *testing.T) {
	s := newTestStore()

	_, err := s.Get("nope")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetReadsPaletteFileWhenHexcodesAbsent(t *testing.T) {
	s := newTestStore()

	hexcodes := []string{"#112233", "#445566"}
	if err := s.WritePaletteFile("/out/side.json", hexcodes); err != nil {
		t.Fatalf("WritePaletteFile returned error: %v", err)
	}

	path := "/out/side.json"
	rec := Record{
		Name:    "file_backed",
		NColors: 2,
		Path:    &path,
	}
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := s.Get("file_backed")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Hexcodes) != 2 || got.Hexcodes[0] != "#112233" || got.Hexcodes[1] != "#445566" {
		t.Errorf("hexcodes not read from palette file: %v", got.Hexcodes)
	}
}

func TestListPagination(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 5; i++ {
		if err := s.Save(testRecord(fmt.Sprintf("record_%d", i), 4)); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}

	first, err := s.List(1, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("page 1 has %d records, want 2", len(first))
	}
	if first[0].Name != "record_0" || first[1].Name != "record_1" {
		t.Errorf("page 1 out of order: %s, %s", first[0].Name, first[1].Name)
	}

	last, err := s.List(3, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(last) != 1 || last[0].Name != "record_4" {
		t.Errorf("unexpected final page: %v", last)
	}

	empty, err := s.List(4, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("page past the end has %d records, want 0", len(empty))
	}

	if _, err := s.List(0, 2); err == nil {
		t.Error("expected error for page 0")
	}
	if _, err := s.List(1, 0); err == nil {
		t.Error("expected error for per-page 0")
	}
}

func TestFindByColourCount(t *testing.T) {
	s := newTestStore()

	counts := []int{4, 6, 4, 8}
	for i, n := range counts {
		if err := s.Save(testRecord(fmt.Sprintf("record_%d", i), n)); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}

	found, err := s.FindByColourCount(4, 1, 100)
	if err != nil {
		t.Fatalf("FindByColourCount returned error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d records with 4 colours, want 2", len(found))
	}
	for _, rec := range found {
		if rec.NColors != 4 {
			t.Errorf("record %s has %d colours", rec.Name, rec.NColors)
		}
	}

	none, err := s.FindByColourCount(12, 1, 100)
	if err != nil {
		t.Fatalf("FindByColourCount returned error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("found %d records with 12 colours, want 0", len(none))
	}
}

func TestDefaultName(t *testing.T) {
	tests := []struct {
		artist, album string
		nColors       int
		want          string
	}{
		{"Radiohead", "OK Computer", 4, "radiohead_ok_computer_4"},
		{"Aphex Twin", "Drukqs", 6, "aphex_twin_drukqs_6"},
		{"  Aphex Twin ", "Drukqs", 2, "aphex_twin_drukqs_2"},
	}

	for _, tt := range tests {
		if got := DefaultName(tt.artist, tt.album, tt.nColors); got != tt.want {
			t.Errorf("DefaultName(%q, %q, %d) = %q, want %q", tt.artist, tt.album, tt.nColors, got, tt.want)
		}
	}
}

func TestPaletteFileRoundTrip(t *testing.T) {
	s := newTestStore()

	hexcodes := []string{"#000000", "#ffffff", "#ff00ff"}
	if err := s.WritePaletteFile("/exports/palette.json", hexcodes); err != nil {
		t.Fatalf("WritePaletteFile returned error: %v", err)
	}

	got, err := s.ReadPaletteFile("/exports/palette.json")
	if err != nil {
		t.Fatalf("ReadPaletteFile returned error: %v", err)
	}
	if len(got) != len(hexcodes) {
		t.Fatalf("got %d hexcodes, want %d", len(got), len(hexcodes))
	}
	for i := range got {
		if got[i] != hexcodes[i] {
			t.Errorf("hexcode %d = %s, want %s", i, got[i], hexcodes[i])
		}
	}
}
