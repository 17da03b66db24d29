// Package recommend ranks recruiting bureaus for a user.
//
// Scoring is a pure function of the candidate, the viewer's profile and
// the current time; nothing here touches the store. Scores are not
// persisted.
package recommend

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Excluded marks a candidate that must not be shown (event already started).
const Excluded = -1

const (
	schoolWeight   = 30
	companyWeight  = 30
	interestWeight = 10
	orderWeight    = 5
)

// Host is the part of the host's profile used for matching.
type Host struct {
	School    string
	Company   string
	Interests []string
}

// Candidate is a bureau as seen by the scorer. OrderCount counts orders
// in any status.
type Candidate struct {
	BureauID   uint64
	EventTime  time.Time
	Host       Host
	OrderCount int
}

// Profile is the viewer.
type Profile struct {
	UserID    uint64
	School    string
	Company   string
	Interests []string
}

type Ranked struct {
	Candidate Candidate
	Score     int
}

// Score returns Excluded for past events, otherwise the sum of the
// school, company, shared-interest and social-proof signals.
func Score(c Candidate, p Profile, now time.Time) int {
	if c.EventTime.Before(now) {
		return Excluded
	}

	score := 0
	if p.School != "" && c.Host.School == p.School {
		score += schoolWeight
	}
	if p.Company != "" && c.Host.Company == p.Company {
		score += companyWeight
	}
	score += interestWeight * sharedCount(c.Host.Interests, p.Interests)
	score += orderWeight * c.OrderCount
	return score
}

// Rank scores every candidate, drops excluded ones and sorts by score
// descending. Ties keep their input order.
func Rank(candidates []Candidate, p Profile, now time.Time) []Ranked {
	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		s := Score(c, p, now)
		if s == Excluded {
			continue
		}
		out = append(out, Ranked{Candidate: c, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func sharedCount(host, user []string) int {
	if len(host) == 0 || len(user) == 0 {
		return 0
	}
	want := make(map[string]struct{}, len(user))
	for _, tag := range user {
		if tag = strings.TrimSpace(tag); tag != "" {
			want[tag] = struct{}{}
		}
	}
	n := 0
	seen := make(map[string]struct{}, len(host))
	for _, tag := range host {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := want[tag]; ok {
			n++
		}
	}
	return n
}

// ParseInterests decodes a JSON array of tags as produced by older
// exports. Anything that is not a JSON array of strings yields nil.
func ParseInterests(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return NormalizeTags(tags, 0)
}

// NormalizeTags trims, drops blanks and duplicates, keeping first-seen
// order. max <= 0 means no limit.
func NormalizeTags(tags []string, max int) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
