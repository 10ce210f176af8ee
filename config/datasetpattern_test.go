package config

import "testing"

func TestParseDatasetOptionBareObjectIsDefaultForAll(t *testing.T) {
	p, err := ParseDatasetOption(map[string]any{"chunks": "auto"})
	if err != nil {
		t.Fatalf("ParseDatasetOption: %v", err)
	}
	cfg := p.Lookup("/data/0/meshes/E/x")
	if cfg["chunks"] != "auto" {
		t.Errorf("Lookup = %v, want the bare object for any path", cfg)
	}
}

func TestParseDatasetOptionArrayFirstMatchWins(t *testing.T) {
	raw := []any{
		map[string]any{"select": "E/.*", "cfg": map[string]any{"compression": "zlib"}},
		map[string]any{"select": []any{"B/.*", "J/.*"}, "cfg": map[string]any{"compression": "none"}},
		map[string]any{"cfg": map[string]any{"compression": "default"}},
	}
	p, err := ParseDatasetOption(raw)
	if err != nil {
		t.Fatalf("ParseDatasetOption: %v", err)
	}
	if got := p.Lookup("/data/0/meshes/E/x"); got["compression"] != "zlib" {
		t.Errorf("E/x lookup = %v, want zlib", got)
	}
	if got := p.Lookup("/data/0/meshes/B/y"); got["compression"] != "none" {
		t.Errorf("B/y lookup = %v, want none", got)
	}
	if got := p.Lookup("/data/0/particles/e/position/x"); got["compression"] != "default" {
		t.Errorf("unmatched path should fall back to default, got %v", got)
	}
}

func TestParseDatasetOptionRejectsMultipleDefaults(t *testing.T) {
	raw := []any{
		map[string]any{"cfg": map[string]any{"a": 1}},
		map[string]any{"cfg": map[string]any{"b": 2}},
	}
	if _, err := ParseDatasetOption(raw); err == nil {
		t.Fatal("expected an error for two no-select default entries")
	}
}

func TestParseDatasetOptionRejectsInvalidRegex(t *testing.T) {
	raw := []any{
		map[string]any{"select": "(unterminated", "cfg": map[string]any{}},
	}
	if _, err := ParseDatasetOption(raw); err == nil {
		t.Fatal("expected an error for an invalid select regex")
	}
}

func TestParseDatasetOptionRejectsNonObjectNonArray(t *testing.T) {
	if _, err := ParseDatasetOption("not-a-valid-shape"); err == nil {
		t.Fatal("expected an error for a dataset option that is neither object nor array")
	}
}

func TestNilPatternLookupReturnsNil(t *testing.T) {
	var p *DatasetPattern
	if got := p.Lookup("/any/path"); got != nil {
		t.Errorf("Lookup on a nil *DatasetPattern = %v, want nil", got)
	}
}
