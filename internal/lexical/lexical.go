// Package lexical implements deterministic text similarity scoring used
// when the vector search path is unavailable, and requirement matching
// against weighted capability records.
package lexical

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum fallback score kept in a result set.
const DefaultThreshold = 0.2

// Ratio returns a case-insensitive sequence similarity ratio in [0,1]:
// twice the number of matching characters over the total length of both
// strings. Two empty strings are identical.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	m := matching(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

// matching counts matching characters by locating the longest common
// substring and recursing on the pieces to its left and right.
func matching(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matching(a[:ai], b[:bi])
	total += matching(a[ai+size:], b[bi+size:])
	return total
}

func longestMatch(a, b []rune) (ai, bi, size int) {
	// j2len[j] holds the length of the match ending at a[i], b[j].
	j2len := make(map[int]int, len(b))
	for i := range a {
		next := make(map[int]int, len(b))
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return ai, bi, size
}

// Score rates a query against a title and body. Title similarity
// dominates, with a fixed bonus when the query appears verbatim in the
// body. The result is clipped to [0,1].
func Score(query, title, body string) float64 {
	s := 0.6*Ratio(query, title) + 0.4*Ratio(query, body)
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" && strings.Contains(strings.ToLower(body), q) {
		s += 0.3
	}
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Document is a scorable candidate.
type Document struct {
	ID    string
	Title string
	Body  string
}

// Match is a scored document reference.
type Match struct {
	ID    string
	Score float64
}

// Rank scores every document against the query, drops results below the
// threshold and returns the rest sorted by descending score. A blank
// query returns no matches rather than matching everything.
func Rank(query string, docs []Document, threshold float64) []Match {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	matches := make([]Match, 0, len(docs))
	for _, d := range docs {
		s := Score(query, d.Title, d.Body)
		if s < threshold {
			continue
		}
		matches = append(matches, Match{ID: d.ID, Score: s})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

// Candidate is a weighted capability considered during requirement
// matching. Weight comes from the capability's proficiency level.
type Candidate struct {
	Name   string
	Body   string
	Weight float64
}

// Report is the outcome of matching a requirement list against a
// candidate set.
type Report struct {
	Matched []string
	Partial []string
	Missing []string
	// MatchScore is (matched + 0.5*partial) / total, 0 for an empty
	// requirement list.
	MatchScore float64
}

// MatchRequirements classifies each requirement by its single
// best-scoring candidate, where a candidate scores as the lexical score
// times its level weight. Best >= 0.8 counts as matched, best in
// [0.4, 0.8) as partial, anything lower as missing.
func MatchRequirements(requirements []string, candidates []Candidate) Report {
	var r Report
	if len(requirements) == 0 {
		return r
	}
	for _, req := range requirements {
		best := 0.0
		for _, c := range candidates {
			if s := Score(req, c.Name, c.Body) * c.Weight; s > best {
				best = s
			}
		}
		switch {
		case best >= 0.8:
			r.Matched = append(r.Matched, req)
		case best >= 0.4:
			r.Partial = append(r.Partial, req)
		default:
			r.Missing = append(r.Missing, req)
		}
	}
	r.MatchScore = (float64(len(r.Matched)) + 0.5*float64(len(r.Partial))) / float64(len(requirements))
	return r
}
