// Package testutils provides utilities for testing, including fake
// collaborators and sample programme generators. These components are
// intended for internal use within the project's test suites and demo
// tooling and are not part of the public API.
package testutils

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahrav/go-ballot/internal/domain"
)

// programmeFile mirrors the on-disk candidate profile layout.
type programmeFile struct {
	Name         string   `json:"name"`
	Nickname     string   `json:"nickname"`
	Party        string   `json:"parti"`
	Website      string   `json:"site"`
	Propositions []string `json:"propositions"`
}

var (
	sampleFirstNames = []string{"Alice", "Bruno", "Chloé", "David", "Emma", "Farid", "Gaëlle", "Hugo", "Inès", "Jules"}
	sampleLastNames  = []string{"Martin", "Petit", "Dubois", "Moreau", "Laurent", "Simon", "Michel", "Lefèvre", "Garcia", "Roux"}
	sampleParties    = []string{"Parti du Progrès", "Union Républicaine", "Mouvement Écologiste", "Alliance Populaire", "Rassemblement Libéral"}

	sampleActions = []string{"Raise", "Cut", "Freeze", "Double", "Reform", "Audit", "Decentralize", "Nationalize", "Simplify", "Index"}
	sampleTopics  = []string{
		"the minimum wage", "income tax", "rail investment", "hospital funding",
		"teacher salaries", "housing subsidies", "defence spending", "pension age",
		"renewable energy grants", "public broadcasting", "agricultural aid",
		"research budgets", "police staffing", "unemployment benefits", "fuel taxes",
	}
)

// Candidate builds a candidate with propositions named after its nickname,
// e.g. Candidate("Alice Martin", "alice", 2) proposes "alice proposition 1"
// and "alice proposition 2".
func Candidate(name, nickname string, propositions int) domain.Candidate {
	c := domain.Candidate{
		Name:     name,
		Nickname: nickname,
		Party:    "Parti " + name,
		Website:  "https://" + nickname + ".example.org",
	}
	for i := range propositions {
		c.Propositions = append(c.Propositions, fmt.Sprintf("%s proposition %d", nickname, i+1))
	}
	return c
}

// GenerateSampleProgrammes creates count candidates with perCandidate
// distinct propositions each. The seed controls randomization; a fixed
// value yields reproducible programmes.
// NOTE: The generated programmes are fictional and only meant for demos
// and tests.
func GenerateSampleProgrammes(count, perCandidate int, seed uint64) []domain.Candidate {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	count = min(count, len(sampleFirstNames))
	maxStatements := len(sampleActions) * len(sampleTopics)
	used := make(map[string]bool)

	out := make([]domain.Candidate, 0, count)
	for i := range count {
		first := sampleFirstNames[i]
		last := sampleLastNames[rng.IntN(len(sampleLastNames))]
		nickname := strings.ToLower(first)

		c := domain.Candidate{
			Name:     first + " " + last,
			Nickname: nickname,
			Party:    sampleParties[rng.IntN(len(sampleParties))],
			Website:  fmt.Sprintf("https://%s-%s.example.org", nickname, strings.ToLower(last)),
		}
		for len(c.Propositions) < perCandidate && len(used) < maxStatements {
			text := fmt.Sprintf("%s %s.",
				sampleActions[rng.IntN(len(sampleActions))],
				sampleTopics[rng.IntN(len(sampleTopics))])
			if used[text] {
				continue
			}
			used[text] = true
			c.Propositions = append(c.Propositions, text)
		}
		out = append(out, c)
	}
	return out
}

// SaveProgrammes writes one <nickname>.json profile per candidate into dir
// and returns the written paths.
func SaveProgrammes(dir string, candidates []domain.Candidate) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		data, err := json.MarshalIndent(programmeFile{
			Name:         c.Name,
			Nickname:     c.Nickname,
			Party:        c.Party,
			Website:      c.Website,
			Propositions: c.Propositions,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal programme %s: %w", c.Nickname, err)
		}

		path := filepath.Join(dir, c.Nickname+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write programme file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ProgrammeStatistics summarizes a set of generated programmes.
type ProgrammeStatistics struct {
	Candidates        int
	Propositions      int
	PartiesCount      map[string]int
	AvgPerCandidate   float64
	DistinctStatement int
}

// ComputeProgrammeStatistics gathers counts about the given candidates.
func ComputeProgrammeStatistics(candidates []domain.Candidate) ProgrammeStatistics {
	stats := ProgrammeStatistics{
		Candidates:   len(candidates),
		PartiesCount: make(map[string]int),
	}
	distinct := make(map[string]bool)
	for _, c := range candidates {
		stats.Propositions += len(c.Propositions)
		stats.PartiesCount[c.Party]++
		for _, p := range c.Propositions {
			distinct[p] = true
		}
	}
	stats.DistinctStatement = len(distinct)
	if len(candidates) > 0 {
		stats.AvgPerCandidate = float64(stats.Propositions) / float64(len(candidates))
	}
	return stats
}
