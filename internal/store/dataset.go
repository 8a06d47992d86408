package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DecodeDataset reads a JSON array of flat team objects. "name" (or "team")
// identifies the row, "seed" is optional, every other key is a metric whose
// value may be a number, a numeric string, or null.
func DecodeDataset(r io.Reader) ([]TeamRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []map[string]interface{}
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	records := make([]TeamRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeDataset writes records in the flat layout DecodeDataset accepts.
func EncodeDataset(w io.Writer, records []TeamRecord) error {
	rows := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		row := make(map[string]interface{}, len(rec.Metrics)+2)
		for k, v := range rec.Metrics {
			if v == nil {
				row[k] = nil
				continue
			}
			row[k] = *v
		}
		row["name"] = rec.Name
		if rec.Seed != nil {
			row["seed"] = *rec.Seed
		} else {
			row["seed"] = nil
		}
		rows = append(rows, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func recordFromRow(row map[string]interface{}) (TeamRecord, error) {
	rec := TeamRecord{Metrics: make(map[string]*float64, len(row))}

	for rawKey, raw := range row {
		key := normalizeKey(rawKey)
		switch key {
		case "name", "team":
			s, ok := raw.(string)
			if !ok {
				return rec, fmt.Errorf("%s must be a string", key)
			}
			rec.Name = strings.TrimSpace(s)
		case "seed":
			if v, ok := toFloat(raw); ok && v == math.Trunc(v) {
				seed := int(v)
				if ValidSeed(seed) {
					rec.Seed = &seed
				}
			}
		default:
			if v, ok := toFloat(raw); ok {
				val := v
				rec.Metrics[key] = &val
			} else {
				rec.Metrics[key] = nil
			}
		}
	}

	if rec.Name == "" {
		return rec, fmt.Errorf("missing team name")
	}
	return rec, nil
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, finite(f)
	case float64:
		return v, finite(v)
	case int:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FileSource reads a dataset from a JSON file on disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) LoadTeams(_ context.Context) ([]TeamRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return DecodeDataset(bytes.NewReader(data))
}

func (s *FileSource) Close() error { return nil }
