package identity_test

import (
	"testing"
	"time"

	"github.com/fieldhouse/combine/internal/domain/identity"
	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(n int) *int { return &n }

func TestKey(t *testing.T) {
	Convey("Identity keys are stable across cosmetic variation", t, func() {
		base := identity.Key("ev-1", "Jane", "Doe", intPtr(12))

		So(identity.Key("ev-1", " jane ", "DOE", intPtr(12)), ShouldEqual, base)
		So(identity.Key("ev-1", "Jane", "Doe", intPtr(12)), ShouldEqual, base)

		Convey("And differ when any identity part differs", func() {
			So(identity.Key("ev-2", "Jane", "Doe", intPtr(12)), ShouldNotEqual, base)
			So(identity.Key("ev-1", "Jane", "Doe", intPtr(7)), ShouldNotEqual, base)
			So(identity.Key("ev-1", "Jane", "Doe", nil), ShouldNotEqual, base)
			So(identity.Key("ev-1", "Jane", "Smith", intPtr(12)), ShouldNotEqual, base)
		})

		Convey("Rows without numbers share a sentinel segment", func() {
			a := identity.Key("ev-1", "Jane", "Doe", nil)
			b := identity.Key("ev-1", "jane", "doe", nil)
			So(a, ShouldEqual, b)
		})
	})
}

func TestID(t *testing.T) {
	Convey("Participant ids are 20 lowercase hex characters", t, func() {
		id := identity.ID(identity.Key("ev-1", "Jane", "Doe", intPtr(12)))
		So(id, ShouldHaveLength, 20)
		for _, r := range id {
			So(r >= '0' && r <= '9' || r >= 'a' && r <= 'f', ShouldBeTrue)
		}

		Convey("And are deterministic", func() {
			So(identity.ID("k"), ShouldEqual, identity.ID("k"))
			So(identity.ID("k"), ShouldNotEqual, identity.ID("k2"))
		})
	})
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	row := func(idx int, first, last string, num *int, scores map[string]float64) normalize.Row {
		return normalize.Row{Index: idx, First: first, Last: last, Number: num, Scores: scores}
	}

	Convey("Given an empty event", t, func() {
		noExisting := map[string]*model.Participant{}
		noExternal := map[string]*model.Participant{}

		Convey("New rows stage creates with derived ids", func() {
			res := identity.Resolve("ev-1", []normalize.Row{
				row(1, "Jane", "Doe", intPtr(12), map[string]float64{"40m_dash": 4.5}),
				row(2, "Bob", "Lee", nil, nil),
			}, noExisting, noExternal, identity.ModeFull, now)

			So(res.Creates, ShouldHaveLength, 2)
			So(res.Updates, ShouldBeEmpty)
			So(res.Rejections, ShouldBeEmpty)

			jane := res.Creates[0]
			So(jane.ID, ShouldEqual, identity.ID(identity.Key("ev-1", "Jane", "Doe", intPtr(12))))
			So(jane.Name, ShouldEqual, "Jane Doe")
			So(jane.CreatedAt.Equal(now), ShouldBeTrue)
			So(jane.Scores["40m_dash"], ShouldAlmostEqual, 4.5, 1e-9)
			So(res.ScoresWritten["40m_dash"], ShouldEqual, 1)
		})

		Convey("Within-file duplicates keep the first occurrence", func() {
			res := identity.Resolve("ev-1", []normalize.Row{
				row(1, "Jane", "Doe", intPtr(12), map[string]float64{"40m_dash": 4.5}),
				row(2, "jane", "DOE", intPtr(12), map[string]float64{"40m_dash": 9.9}),
			}, noExisting, noExternal, identity.ModeFull, now)

			So(res.Creates, ShouldHaveLength, 1)
			So(res.Creates[0].Scores["40m_dash"], ShouldAlmostEqual, 4.5, 1e-9)
			So(res.Rejections, ShouldHaveLength, 1)
			rej := res.Rejections[0]
			So(rej.RowIndex, ShouldEqual, 2)
			So(rej.Reason, ShouldEqual, identity.ReasonDuplicateInFile)

			Convey("And the rejection names the first occurrence and the colliding identity", func() {
				So(rej.DuplicateOfRow, ShouldEqual, 1)
				So(rej.Identity, ShouldNotBeNil)
				So(rej.Identity.First, ShouldEqual, "jane")
				So(rej.Identity.Last, ShouldEqual, "DOE")
				So(*rej.Identity.Number, ShouldEqual, 12)
			})
		})

		Convey("Duplicate details call out differing age groups", func() {
			r1 := row(1, "Jane", "Doe", intPtr(12), nil)
			r1.AgeGroup = "U12"
			r2 := row(2, "Jane", "Doe", intPtr(12), nil)
			r2.AgeGroup = "U14"

			res := identity.Resolve("ev-1", []normalize.Row{r1, r2}, noExisting, noExternal, identity.ModeFull, now)

			So(res.Rejections, ShouldHaveLength, 1)
			So(res.Rejections[0].Details, ShouldContainSubstring, "U14")
		})

		Convey("Rows with validation errors are rejected, not imported", func() {
			r := row(1, "Jane", "Doe", nil, map[string]float64{"40m_dash": 4.5})
			r.Errors = []string{`invalid number "abc"`}

			res := identity.Resolve("ev-1", []normalize.Row{r}, noExisting, noExternal, identity.ModeFull, now)

			So(res.Creates, ShouldBeEmpty)
			So(res.Rejections, ShouldHaveLength, 1)
			So(res.Rejections[0].Reason, ShouldEqual, identity.ReasonInvalidRow)
			So(res.Rejections[0].Details, ShouldContainSubstring, "abc")
		})

		Convey("Rows with no name at all are rejected", func() {
			res := identity.Resolve("ev-1", []normalize.Row{
				row(1, "", "", intPtr(12), map[string]float64{"40m_dash": 4.5}),
			}, noExisting, noExternal, identity.ModeFull, now)

			So(res.Creates, ShouldBeEmpty)
			So(res.Rejections, ShouldHaveLength, 1)
			So(res.Rejections[0].Reason, ShouldEqual, identity.ReasonMissingName)
		})

		Convey("Scores-only mode rejects rows matching nobody", func() {
			res := identity.Resolve("ev-1", []normalize.Row{
				row(1, "Jane", "Doe", intPtr(12), map[string]float64{"40m_dash": 4.5}),
			}, noExisting, noExternal, identity.ModeScoresOnly, now)

			So(res.Creates, ShouldBeEmpty)
			So(res.Updates, ShouldBeEmpty)
			So(res.Rejections, ShouldHaveLength, 1)
			So(res.Rejections[0].Reason, ShouldEqual, identity.ReasonUnknownParticipant)
		})
	})

	Convey("Given an event with existing participants", t, func() {
		key := identity.Key("ev-1", "Jane", "Doe", intPtr(12))
		jane := &model.Participant{
			ID:       identity.ID(key),
			EventID:  "ev-1",
			Name:     "Jane Doe",
			First:    "Jane",
			Last:     "Doe",
			Number:   intPtr(12),
			AgeGroup: "U12",
			Scores:   map[string]float64{"40m_dash": 4.8},
		}
		existing := map[string]*model.Participant{key: jane}
		byExternal := map[string]*model.Participant{"REG-77": jane}

		Convey("A matching row stages an update with merged scores", func() {
			r := row(1, "Jane", "Doe", intPtr(12), map[string]float64{"40m_dash": 4.5, "vertical_jump": 30})
			res := identity.Resolve("ev-1", []normalize.Row{r}, existing, byExternal, identity.ModeFull, now)

			So(res.Creates, ShouldBeEmpty)
			So(res.Updates, ShouldHaveLength, 1)
			up := res.Updates[0]
			So(up.Scores["40m_dash"], ShouldAlmostEqual, 4.5, 1e-9)
			So(up.Scores["vertical_jump"], ShouldAlmostEqual, 30.0, 1e-9)

			Convey("Without mutating the stored record", func() {
				So(jane.Scores["40m_dash"], ShouldAlmostEqual, 4.8, 1e-9)
			})
		})

		Convey("External id matches win over identity key matches", func() {
			r := row(1, "Janet", "Doe", intPtr(12), map[string]float64{"catching": 80})
			r.ExternalID = "REG-77"

			res := identity.Resolve("ev-1", []normalize.Row{r}, existing, byExternal, identity.ModeFull, now)

			So(res.Creates, ShouldBeEmpty)
			So(res.Updates, ShouldHaveLength, 1)
			up := res.Updates[0]
			So(up.ID, ShouldEqual, jane.ID)
			So(up.Scores["catching"], ShouldAlmostEqual, 80.0, 1e-9)
		})

		Convey("A full-mode re-import lands a corrected name on the matched record", func() {
			misspelled := &model.Participant{
				ID:         "p-77",
				EventID:    "ev-1",
				Name:       "Jnae Doe",
				First:      "Jnae",
				Last:       "Doe",
				Number:     intPtr(12),
				ExternalID: "REG-77",
			}
			r := row(1, "Jane", "Doe", intPtr(14), nil)
			r.ExternalID = "REG-77"
			r.AgeGroup = "U14"
			r.TeamName = "Hawks"

			res := identity.Resolve("ev-1", []normalize.Row{r},
				map[string]*model.Participant{},
				map[string]*model.Participant{"REG-77": misspelled},
				identity.ModeFull, now)

			So(res.Updates, ShouldHaveLength, 1)
			up := res.Updates[0]
			So(up.ID, ShouldEqual, "p-77")
			So(up.First, ShouldEqual, "Jane")
			So(up.Name, ShouldEqual, "Jane Doe")
			So(*up.Number, ShouldEqual, 14)
			So(up.AgeGroup, ShouldEqual, "U14")
			So(up.TeamName, ShouldEqual, "Hawks")
		})

		Convey("Scores-only mode leaves everything but scores alone", func() {
			r := row(1, "jane", "doe", intPtr(12), map[string]float64{"40m_dash": 4.4})
			r.AgeGroup = "U14"

			res := identity.Resolve("ev-1", []normalize.Row{r}, existing, byExternal, identity.ModeScoresOnly, now)

			up := res.Updates[0]
			So(up.First, ShouldEqual, "Jane")
			So(up.Name, ShouldEqual, "Jane Doe")
			So(up.AgeGroup, ShouldEqual, "U12")
			So(up.Scores["40m_dash"], ShouldAlmostEqual, 4.4, 1e-9)
		})

		Convey("Two rows reaching the same record merge into one snapshot", func() {
			r1 := row(1, "Janet", "Doe", nil, map[string]float64{"catching": 80})
			r1.ExternalID = "REG-77"
			r2 := row(2, "Jane", "Doe", intPtr(12), map[string]float64{"throwing": 70})

			res := identity.Resolve("ev-1", []normalize.Row{r1, r2}, existing, byExternal, identity.ModeFull, now)

			So(res.Updates, ShouldHaveLength, 1)
			up := res.Updates[0]
			So(up.Scores["catching"], ShouldAlmostEqual, 80.0, 1e-9)
			So(up.Scores["throwing"], ShouldAlmostEqual, 70.0, 1e-9)
		})
	})
}
