// Package ranking computes weighted composite rankings over participant
// drill scores. Scores are normalized per drill against the observed range
// so drills measured in seconds and drills measured in points can be
// combined on one scale.
package ranking

import (
	"fmt"
	"sort"

	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/schema"
)

// RankedParticipant is one ranking entry. Normalized holds the 0..1
// per-drill scores for every drill the participant has a value for,
// including zero-weight drills.
type RankedParticipant struct {
	Participant *model.Participant `json:"participant"`
	Rank        int                `json:"rank"`
	Composite   float64            `json:"composite_score"`
	Normalized  map[string]float64 `json:"normalized_scores"`
}

// Rank orders participants by weighted composite score, highest first.
// Weights default to each drill's configured weight and may be overridden
// per call; they are renormalized so only relative magnitude matters. A
// drill with weight zero still shows up in the normalized breakdown but
// contributes nothing to the composite. Ties keep input order.
func Rank(
	participants []*model.Participant,
	drills []schema.DrillDefinition,
	overrides map[string]float64,
) ([]RankedParticipant, error) {
	active := schema.ActiveDrills(drills)
	if len(active) == 0 {
		return nil, ErrNoDrills
	}

	weights := make(map[string]float64, len(active))
	var total float64
	for _, d := range active {
		w := d.DefaultWeight
		if ov, ok := overrides[d.Key]; ok {
			w = ov
		}
		if w < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidWeight, d.Key)
		}
		weights[d.Key] = w
		total += w
	}
	if total <= 0 {
		return nil, ErrNoPositiveWeights
	}

	ranges := observedRanges(participants, active)

	out := make([]RankedParticipant, 0, len(participants))
	for _, p := range participants {
		entry := RankedParticipant{
			Participant: p,
			Normalized:  make(map[string]float64, len(active)),
		}
		for _, d := range active {
			v, ok := p.Scores[d.Key]
			if !ok {
				continue
			}
			n := ranges[d.Key].normalize(v, d.LowerIsBetter)
			entry.Normalized[d.Key] = n
			entry.Composite += (weights[d.Key] / total) * n
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Composite > out[j].Composite
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// valueRange is the observed min/max for one drill across the cohort.
type valueRange struct {
	min, max float64
	seen     bool
}

// normalize maps a value into 0..1 within the observed range. When every
// recorded value is identical there is nothing to separate on, so everyone
// with a value gets full credit.
func (r valueRange) normalize(v float64, lowerIsBetter bool) float64 {
	if !r.seen || r.max == r.min {
		return 1.0
	}
	n := (v - r.min) / (r.max - r.min)
	if lowerIsBetter {
		n = 1.0 - n
	}
	return n
}

func observedRanges(participants []*model.Participant, drills []schema.DrillDefinition) map[string]valueRange {
	ranges := make(map[string]valueRange, len(drills))
	for _, d := range drills {
		r := valueRange{}
		for _, p := range participants {
			v, ok := p.Scores[d.Key]
			if !ok {
				continue
			}
			if !r.seen {
				r = valueRange{min: v, max: v, seen: true}
				continue
			}
			if v < r.min {
				r.min = v
			}
			if v > r.max {
				r.max = v
			}
		}
		ranges[d.Key] = r
	}
	return ranges
}
