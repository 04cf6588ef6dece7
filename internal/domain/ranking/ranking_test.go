package ranking_test

import (
	"testing"

	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/ranking"
	"github.com/fieldhouse/combine/internal/domain/schema"
	. "github.com/smartystreets/goconvey/convey"
)

func floatPtr(v float64) *float64 { return &v }

func sprintDrills() []schema.DrillDefinition {
	return []schema.DrillDefinition{
		{Key: "sprint", Label: "Sprint", Unit: "sec", Active: true, LowerIsBetter: true, DefaultWeight: 0.5},
		{Key: "jump", Label: "Jump", Unit: "in", Active: true, DefaultWeight: 0.5},
	}
}

func athlete(id string, scores map[string]float64) *model.Participant {
	return &model.Participant{ID: id, EventID: "ev-1", Name: id, Scores: scores}
}

func TestRank(t *testing.T) {
	Convey("Given two athletes and a lower-is-better sprint", t, func() {
		drills := sprintDrills()
		fast := athlete("fast", map[string]float64{"sprint": 7.0, "jump": 20})
		slow := athlete("slow", map[string]float64{"sprint": 8.0, "jump": 30})

		Convey("The faster sprinter gets the full sprint credit", func() {
			ranked, err := ranking.Rank([]*model.Participant{slow, fast}, drills, nil)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, 2)

			byID := map[string]ranking.RankedParticipant{}
			for _, r := range ranked {
				byID[r.Participant.ID] = r
			}
			So(byID["fast"].Normalized["sprint"], ShouldAlmostEqual, 1.0, 1e-9)
			So(byID["slow"].Normalized["sprint"], ShouldAlmostEqual, 0.0, 1e-9)
			So(byID["fast"].Normalized["jump"], ShouldAlmostEqual, 0.0, 1e-9)
			So(byID["slow"].Normalized["jump"], ShouldAlmostEqual, 1.0, 1e-9)

			So(byID["fast"].Composite, ShouldAlmostEqual, 0.5, 1e-9)
			So(byID["slow"].Composite, ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Weight overrides shift the composite", func() {
			ranked, err := ranking.Rank(
				[]*model.Participant{fast, slow},
				drills,
				map[string]float64{"sprint": 3, "jump": 1},
			)
			So(err, ShouldBeNil)
			So(ranked[0].Participant.ID, ShouldEqual, "fast")
			So(ranked[0].Rank, ShouldEqual, 1)
			So(ranked[0].Composite, ShouldAlmostEqual, 0.75, 1e-9)
			So(ranked[1].Composite, ShouldAlmostEqual, 0.25, 1e-9)
		})

		Convey("Improving a score never lowers the composite", func() {
			base, err := ranking.Rank([]*model.Participant{fast, slow}, drills, nil)
			So(err, ShouldBeNil)

			better := athlete("fast", map[string]float64{"sprint": 6.5, "jump": 20})
			improved, err := ranking.Rank([]*model.Participant{better, slow}, drills, nil)
			So(err, ShouldBeNil)

			So(improved[0].Participant.ID, ShouldEqual, "fast")
			So(improved[0].Composite, ShouldBeGreaterThanOrEqualTo, base[0].Composite)
		})
	})

	Convey("Given edge-case cohorts", t, func() {
		drills := sprintDrills()

		Convey("All-tied values normalize to full credit", func() {
			a := athlete("a", map[string]float64{"sprint": 7.0})
			b := athlete("b", map[string]float64{"sprint": 7.0})

			ranked, err := ranking.Rank([]*model.Participant{a, b}, drills, map[string]float64{"jump": 0, "sprint": 1})
			So(err, ShouldBeNil)
			So(ranked[0].Normalized["sprint"], ShouldAlmostEqual, 1.0, 1e-9)
			So(ranked[1].Normalized["sprint"], ShouldAlmostEqual, 1.0, 1e-9)
			So(ranked[0].Composite, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Ties keep input order with sequential ranks", func() {
			a := athlete("a", map[string]float64{"sprint": 7.0})
			b := athlete("b", map[string]float64{"sprint": 7.0})

			ranked, err := ranking.Rank([]*model.Participant{a, b}, drills, nil)
			So(err, ShouldBeNil)
			So(ranked[0].Participant.ID, ShouldEqual, "a")
			So(ranked[0].Rank, ShouldEqual, 1)
			So(ranked[1].Participant.ID, ShouldEqual, "b")
			So(ranked[1].Rank, ShouldEqual, 2)
		})

		Convey("Missing values contribute nothing", func() {
			a := athlete("a", map[string]float64{"sprint": 7.0, "jump": 30})
			b := athlete("b", map[string]float64{"jump": 30})

			ranked, err := ranking.Rank([]*model.Participant{a, b}, drills, nil)
			So(err, ShouldBeNil)

			byID := map[string]ranking.RankedParticipant{}
			for _, r := range ranked {
				byID[r.Participant.ID] = r
			}
			_, has := byID["b"].Normalized["sprint"]
			So(has, ShouldBeFalse)
			So(byID["b"].Composite, ShouldAlmostEqual, 0.5, 1e-9)
			So(byID["a"].Composite, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Zero-weight drills stay in the breakdown", func() {
			a := athlete("a", map[string]float64{"sprint": 7.0, "jump": 30})
			b := athlete("b", map[string]float64{"sprint": 8.0, "jump": 20})

			ranked, err := ranking.Rank([]*model.Participant{a, b}, drills, map[string]float64{"jump": 0})
			So(err, ShouldBeNil)

			So(ranked[0].Participant.ID, ShouldEqual, "a")
			So(ranked[0].Composite, ShouldAlmostEqual, 1.0, 1e-9)
			_, has := ranked[0].Normalized["jump"]
			So(has, ShouldBeTrue)
		})

		Convey("Negative weights are rejected", func() {
			_, err := ranking.Rank(nil, drills, map[string]float64{"jump": -1})
			So(err, ShouldWrap, ranking.ErrInvalidWeight)
		})

		Convey("All-zero weights are rejected", func() {
			_, err := ranking.Rank(nil, drills, map[string]float64{"jump": 0, "sprint": 0})
			So(err, ShouldWrap, ranking.ErrNoPositiveWeights)
		})

		Convey("No active drills is an error", func() {
			inactive := sprintDrills()
			for i := range inactive {
				inactive[i].Active = false
			}
			_, err := ranking.Rank(nil, inactive, nil)
			So(err, ShouldWrap, ranking.ErrNoDrills)
		})

		Convey("Inactive drills are excluded from the composite", func() {
			mixed := sprintDrills()
			mixed[1].Active = false

			a := athlete("a", map[string]float64{"sprint": 7.0, "jump": 5})
			b := athlete("b", map[string]float64{"sprint": 8.0, "jump": 50})

			ranked, err := ranking.Rank([]*model.Participant{a, b}, mixed, nil)
			So(err, ShouldBeNil)
			So(ranked[0].Participant.ID, ShouldEqual, "a")
			_, has := ranked[0].Normalized["jump"]
			So(has, ShouldBeFalse)
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given a cohort with mixed coverage", t, func() {
		drills := []schema.DrillDefinition{
			{Key: "sprint", Label: "Sprint", Unit: "sec", Active: true, LowerIsBetter: true, DefaultWeight: 0.5, MinValue: floatPtr(3), MaxValue: floatPtr(15)},
			{Key: "jump", Label: "Jump", Unit: "in", Active: true, DefaultWeight: 0.5},
		}
		people := []*model.Participant{
			{ID: "a", Name: "A", AgeGroup: "U12", Scores: map[string]float64{"sprint": 7.0, "jump": 30}},
			{ID: "b", Name: "B", AgeGroup: "U12", Scores: map[string]float64{"sprint": 8.0}},
			{ID: "c", Name: "C", AgeGroup: "U14", Scores: map[string]float64{"sprint": 6.5, "jump": 25}},
			{ID: "d", Name: "D", Scores: map[string]float64{"sprint": 7.5, "jump": 20}},
		}

		stats := ranking.Stats(people, drills)

		Convey("Totals and age groups are counted", func() {
			So(stats.TotalParticipants, ShouldEqual, 4)
			So(stats.ByAgeGroup["U12"], ShouldEqual, 2)
			So(stats.ByAgeGroup["U14"], ShouldEqual, 1)
		})

		Convey("Per-drill aggregates are computed", func() {
			So(stats.Drills, ShouldHaveLength, 2)

			sprint := stats.Drills[0]
			So(sprint.Key, ShouldEqual, "sprint")
			So(sprint.Count, ShouldEqual, 4)
			So(sprint.Missing, ShouldEqual, 0)
			So(sprint.Min, ShouldAlmostEqual, 6.5, 1e-9)
			So(sprint.Max, ShouldAlmostEqual, 8.0, 1e-9)
			So(sprint.Mean, ShouldAlmostEqual, 7.25, 1e-9)

			jump := stats.Drills[1]
			So(jump.Count, ShouldEqual, 3)
			So(jump.Missing, ShouldEqual, 1)
		})

		Convey("Top performers follow the drill direction", func() {
			sprint := stats.Drills[0]
			So(sprint.TopPerformers, ShouldHaveLength, 3)
			So(sprint.TopPerformers[0].ID, ShouldEqual, "c")
			So(sprint.TopPerformers[0].Value, ShouldAlmostEqual, 6.5, 1e-9)
			So(sprint.TopPerformers[1].ID, ShouldEqual, "a")

			jump := stats.Drills[1]
			So(jump.TopPerformers[0].ID, ShouldEqual, "a")
			So(jump.TopPerformers[0].Value, ShouldAlmostEqual, 30.0, 1e-9)
		})
	})
}
