package ranking

import (
	"sort"

	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/schema"
)

// TopPerformer is one leaderboard entry for a single drill.
type TopPerformer struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DrillStats summarizes one drill across the cohort.
type DrillStats struct {
	Key           string         `json:"key"`
	Label         string         `json:"label"`
	Unit          string         `json:"unit"`
	Count         int            `json:"count"`
	Missing       int            `json:"missing"`
	Min           float64        `json:"min"`
	Max           float64        `json:"max"`
	Mean          float64        `json:"mean"`
	TopPerformers []TopPerformer `json:"top_performers"`
}

// EventStats is the aggregate view an organizer sees on the event dashboard.
type EventStats struct {
	TotalParticipants int            `json:"total_participants"`
	ByAgeGroup        map[string]int `json:"by_age_group"`
	Drills            []DrillStats   `json:"drills"`
}

const topPerformerCount = 3

// Stats computes per-drill aggregates over the cohort. Only active drills
// are reported; participants without a value for a drill count as missing.
// Top performers sort by the drill's direction, so the fastest time leads
// a lower-is-better drill.
func Stats(participants []*model.Participant, drills []schema.DrillDefinition) EventStats {
	stats := EventStats{
		TotalParticipants: len(participants),
		ByAgeGroup:        make(map[string]int),
	}
	for _, p := range participants {
		if p.AgeGroup != "" {
			stats.ByAgeGroup[p.AgeGroup]++
		}
	}

	for _, d := range schema.ActiveDrills(drills) {
		ds := DrillStats{Key: d.Key, Label: d.Label, Unit: d.Unit}

		type scored struct {
			p *model.Participant
			v float64
		}
		var values []scored
		var sum float64
		for _, p := range participants {
			v, ok := p.Scores[d.Key]
			if !ok {
				ds.Missing++
				continue
			}
			values = append(values, scored{p: p, v: v})
			sum += v
		}

		ds.Count = len(values)
		if ds.Count > 0 {
			sort.SliceStable(values, func(i, j int) bool {
				if d.LowerIsBetter {
					return values[i].v < values[j].v
				}
				return values[i].v > values[j].v
			})
			ds.Min, ds.Max = values[0].v, values[0].v
			for _, s := range values {
				if s.v < ds.Min {
					ds.Min = s.v
				}
				if s.v > ds.Max {
					ds.Max = s.v
				}
			}
			ds.Mean = sum / float64(ds.Count)

			top := len(values)
			if top > topPerformerCount {
				top = topPerformerCount
			}
			for _, s := range values[:top] {
				ds.TopPerformers = append(ds.TopPerformers, TopPerformer{
					ID:    s.p.ID,
					Name:  s.p.Name,
					Value: s.v,
				})
			}
		}

		stats.Drills = append(stats.Drills, ds)
	}

	return stats
}
