package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeDataset(t *testing.T) {
	input := `[
		{"name": "Houston", "seed": 1, "off_eff": 118.2, "def_eff": "88.5", "wins": 30, "losses": null},
		{"team": " Longwood ", "seed": "16", "off_eff": 101.4, "tempo": ""}
	]`

	records, err := DecodeDataset(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeDataset failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	h := records[0]
	if h.Name != "Houston" {
		t.Errorf("expected Houston, got %q", h.Name)
	}
	if h.Seed == nil || *h.Seed != 1 {
		t.Errorf("expected seed 1, got %v", h.Seed)
	}
	if v, ok := h.Metric("def_eff"); !ok || v != 88.5 {
		t.Errorf("expected def_eff 88.5 from string, got %v (%v)", v, ok)
	}
	if _, ok := h.Metric("losses"); ok {
		t.Error("expected null losses to be absent")
	}
	if _, present := h.Metrics["losses"]; !present {
		t.Error("expected null losses key to be kept")
	}

	l := records[1]
	if l.Name != "Longwood" {
		t.Errorf("expected trimmed Longwood, got %q", l.Name)
	}
	if l.Seed == nil || *l.Seed != 16 {
		t.Errorf("expected seed 16 from string, got %v", l.Seed)
	}
	if _, ok := l.Metric("tempo"); ok {
		t.Error("expected empty tempo to be absent")
	}
}

func TestDecodeDatasetSeedOutOfRange(t *testing.T) {
	records, err := DecodeDataset(strings.NewReader(`[{"name":"A","seed":17},{"name":"B","seed":2.5}]`))
	if err != nil {
		t.Fatalf("DecodeDataset failed: %v", err)
	}
	for _, r := range records {
		if r.Seed != nil {
			t.Errorf("%s: expected nil seed, got %d", r.Name, *r.Seed)
		}
	}
}

func TestDecodeDatasetMissingName(t *testing.T) {
	if _, err := DecodeDataset(strings.NewReader(`[{"seed":3}]`)); err == nil {
		t.Fatal("expected error for missing name")
	}
	if _, err := DecodeDataset(strings.NewReader(`{"name":"x"}`)); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}

func TestEncodeDecodeDataset(t *testing.T) {
	seed := 4
	v := 0.512
	in := []TeamRecord{{Name: "Purdue", Seed: &seed, Metrics: map[string]*float64{"efg_pct": &v, "sos": nil}}}

	var buf bytes.Buffer
	if err := EncodeDataset(&buf, in); err != nil {
		t.Fatalf("EncodeDataset failed: %v", err)
	}
	out, err := DecodeDataset(&buf)
	if err != nil {
		t.Fatalf("DecodeDataset failed: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Purdue" || *out[0].Seed != 4 {
		t.Fatalf("unexpected decode: %+v", out)
	}
	if got, ok := out[0].Metric("efg_pct"); !ok || got != 0.512 {
		t.Errorf("expected efg_pct 0.512, got %v", got)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.json")
	if err := os.WriteFile(path, []byte(`[{"name":"Gonzaga","seed":5,"tempo":70.1}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(path)
	defer src.Close()
	records, err := src.LoadTeams(context.Background())
	if err != nil {
		t.Fatalf("LoadTeams failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Gonzaga" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if src.Name() != "file" {
		t.Errorf("expected source name 'file', got %q", src.Name())
	}

	missing := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := missing.LoadTeams(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidSeed(t *testing.T) {
	for _, s := range []int{1, 8, 16} {
		if !ValidSeed(s) {
			t.Errorf("expected %d valid", s)
		}
	}
	for _, s := range []int{0, 17, -1} {
		if ValidSeed(s) {
			t.Errorf("expected %d invalid", s)
		}
	}
}

func TestRecordFromColumns(t *testing.T) {
	seed := int32(12)
	rec, err := recordFromColumns("McNeese", &seed, []byte(`{"OFF_EFF": 110.0, "tempo": null}`))
	if err != nil {
		t.Fatalf("recordFromColumns failed: %v", err)
	}
	if rec.Seed == nil || *rec.Seed != 12 {
		t.Errorf("expected seed 12")
	}
	if v, ok := rec.Metric("off_eff"); !ok || v != 110.0 {
		t.Errorf("expected lower-cased off_eff key, got %v", v)
	}
	if _, err := recordFromColumns("x", nil, []byte(`not json`)); err == nil {
		t.Error("expected error for bad metrics json")
	}
}

func TestStaticSource(t *testing.T) {
	recs := []TeamRecord{{Name: "Houston"}, {Name: "Auburn"}}
	src := &StaticSource{Records: recs}
	if src.Name() != "static" {
		t.Errorf("expected default name 'static', got %q", src.Name())
	}
	got, err := src.LoadTeams(context.Background())
	if err != nil {
		t.Fatalf("LoadTeams failed: %v", err)
	}
	if len(got) != 2 || got[1].Name != "Auburn" {
		t.Fatalf("unexpected records: %+v", got)
	}

	named := &StaticSource{Label: "upload"}
	if named.Name() != "upload" {
		t.Errorf("expected 'upload', got %q", named.Name())
	}
}
