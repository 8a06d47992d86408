// seed_field.go generates a synthetic 64-team field and writes it to disk or
// uploads it to the Matchup API.
//
// Usage:
//
//	go run scripts/seed_field.go -out field.json
//	go run scripts/seed_field.go -api http://localhost:8700 -token $MATCHUP_ADMIN_TOKEN
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

var regions = []string{"East", "West", "South", "Midwest"}

// baseline is a mid-field team; strength shifts each metric by spread.
var baseline = []struct {
	key    string
	mean   float64
	spread float64
}{
	{"off_eff", 110, 6},
	{"def_eff", 98, -5},
	{"ts_pct", 0.565, 0.02},
	{"efg_pct", 0.525, 0.02},
	{"opp_efg_pct", 0.485, -0.018},
	{"poss_ratio", 1.0, 0.04},
	{"to_rate", 0.165, -0.015},
	{"two_pct", 0.525, 0.02},
	{"three_rate", 0.38, 0},
	{"three_pct", 0.35, 0.015},
	{"ft_rate", 0.32, 0.02},
	{"ft_pct", 0.72, 0.02},
	{"pts_two_share", 0.50, 0},
	{"pts_three_share", 0.32, 0},
	{"pts_ft_share", 0.18, 0},
	{"non_blocked_two_rate", 0.90, 0.01},
	{"block_rate", 0.09, 0.01},
	{"steal_rate", 0.09, 0.008},
	{"opp_to_rate", 0.18, 0.01},
	{"opp_ast_per_poss", 0.14, -0.01},
	{"opp_three_rate", 0.37, 0},
	{"opp_three_pct", 0.33, -0.012},
	{"opp_ft_rate", 0.30, -0.02},
	{"orb_rate", 0.30, 0.02},
	{"drb_rate", 0.72, 0.015},
	{"extra_chances_rate", 0.05, 0.01},
	{"tempo", 68, 0},
	{"sos", 40, -30},
}

func main() {
	out := flag.String("out", "", "write the dataset to this file")
	apiURL := flag.String("api", "", "Matchup API base URL to upload to")
	token := flag.String("token", "", "admin bearer token for the upload")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	nullRate := flag.Float64("null-rate", 0.02, "fraction of metric values left null")
	flag.Parse()

	if *out == "" && *apiURL == "" {
		log.Fatal("nothing to do: pass -out and/or -api")
	}

	rng := rand.New(rand.NewSource(*seed))
	records := generate(rng, *nullRate)

	var buf bytes.Buffer
	if err := store.EncodeDataset(&buf, records); err != nil {
		log.Fatalf("encode dataset: %v", err)
	}
	log.Printf("generated %d teams (seed=%d)", len(records), *seed)

	if *out != "" {
		if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
			log.Fatalf("write %s: %v", *out, err)
		}
		log.Printf("wrote %s", *out)
	}

	if *apiURL != "" {
		if err := upload(strings.TrimRight(*apiURL, "/"), *token, buf.Bytes()); err != nil {
			log.Fatalf("upload: %v", err)
		}
		log.Printf("uploaded to %s", *apiURL)
	}
}

func generate(rng *rand.Rand, nullRate float64) []store.TeamRecord {
	records := make([]store.TeamRecord, 0, len(regions)*16)
	for _, region := range regions {
		for s := 1; s <= 16; s++ {
			// Strength runs roughly +1.5 (1 seed) to -1.5 (16 seed) with noise.
			strength := 1.5 - 3*float64(s-1)/15 + rng.NormFloat64()*0.4

			m := make(map[string]*float64, len(baseline)+2)
			for _, b := range baseline {
				if rng.Float64() < nullRate {
					m[b.key] = nil
					continue
				}
				v := b.mean + b.spread*strength + rng.NormFloat64()*math.Abs(b.spread)*0.3
				m[b.key] = &v
			}
			if off, def := m["off_eff"], m["def_eff"]; off != nil && def != nil {
				margin := *off - *def
				m["eff_margin"] = &margin
			}

			games := 32.0
			wins := float64(int(games*(0.5+0.15*strength+rng.NormFloat64()*0.05) + 0.5))
			if wins < 8 {
				wins = 8
			}
			if wins > games-1 {
				wins = games - 1
			}
			losses := games - wins
			m["wins"] = &wins
			m["losses"] = &losses

			seed := s
			records = append(records, store.TeamRecord{
				Name:    fmt.Sprintf("%s %d", region, s),
				Seed:    &seed,
				Metrics: m,
			})
		}
	}
	return records
}

func upload(baseURL, token string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/dataset", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
