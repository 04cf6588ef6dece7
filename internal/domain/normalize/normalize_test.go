package normalize_test

import (
	"testing"

	"github.com/fieldhouse/combine/internal/domain/mapping"
	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/normalize"
	"github.com/fieldhouse/combine/internal/domain/schema"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseNumeric(t *testing.T) {
	Convey("Given messy measurement cells", t, func() {
		cases := map[string]float64{
			"4.52":     4.52,
			"4.52s":    4.52,
			"4.52 sec": 4.52,
			"32 in":    32,
			"85%":      85,
			`28"`:      28,
			"4,52":     4.52,
			"1,234.5":  1234.5,
			"4..52":    4.52,
			"  7.1\t":  7.1,
			"120":      120,
		}

		for in, want := range cases {
			got, err := normalize.ParseNumeric(in)
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, want, 1e-9)
		}

		Convey("Non-numeric cells fail", func() {
			for _, in := range []string{"DNF", "n/a", "-", "fast"} {
				_, err := normalize.ParseNumeric(in)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Empty cells report a distinct error", func() {
			_, err := normalize.ParseNumeric("  ")
			So(err, ShouldWrap, normalize.ErrEmptyValue)
		})
	})
}

func TestParseJerseyNumber(t *testing.T) {
	Convey("Jersey numbers accept integer-valued cells", t, func() {
		for _, in := range []string{"12", "12.0", " 12 "} {
			n, err := normalize.ParseJerseyNumber(in)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 12)
		}

		Convey("Fractional and negative values fail", func() {
			_, err := normalize.ParseJerseyNumber("12.5")
			So(err, ShouldWrap, normalize.ErrNotInteger)

			_, err = normalize.ParseJerseyNumber("-3")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSplitName(t *testing.T) {
	Convey("Combined names split on the first whitespace run", t, func() {
		first, last := normalize.SplitName("Jane Doe")
		So(first, ShouldEqual, "Jane")
		So(last, ShouldEqual, "Doe")

		first, last = normalize.SplitName("Mary Jo  van der Berg")
		So(first, ShouldEqual, "Mary")
		So(last, ShouldEqual, "Jo  van der Berg")

		first, last = normalize.SplitName("  Prince ")
		So(first, ShouldEqual, "Prince")
		So(last, ShouldBeEmpty)
	})
}

func TestCleanValue(t *testing.T) {
	Convey("Invisible characters are stripped", t, func() {
		So(normalize.CleanValue("\uFEFFJane"), ShouldEqual, "Jane")
		So(normalize.CleanValue("Ja​ne"), ShouldEqual, "Jane")
		So(normalize.CleanValue("Jane Doe"), ShouldEqual, "Jane Doe")
		So(normalize.CleanValue("Jane\r\n"), ShouldEqual, "Jane")
		So(normalize.CleanValue("  Jane  "), ShouldEqual, "Jane")
	})
}

func TestRows(t *testing.T) {
	Convey("Given a field mapping over football drills", t, func() {
		drills := schema.BaseTemplates()["football"].Drills
		fm := map[string]string{
			"Player Name": mapping.FieldName,
			"Jersey":      mapping.FieldNumber,
			"Group":       mapping.FieldAgeGroup,
			"40-Yard":     "40m_dash",
			"Vertical":    "vertical_jump",
		}

		Convey("A well-formed row normalizes completely", func() {
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Jane Doe",
				"Jersey":      "12.0",
				"Group":       "U12",
				"40-Yard":     "4.52s",
				"Vertical":    "32 in",
				"Email":       "jane@example.com",
			}}, fm, drills)

			So(rows, ShouldHaveLength, 1)
			r := rows[0]
			So(r.Index, ShouldEqual, 1)
			So(r.First, ShouldEqual, "Jane")
			So(r.Last, ShouldEqual, "Doe")
			So(r.Number, ShouldNotBeNil)
			So(*r.Number, ShouldEqual, 12)
			So(r.AgeGroup, ShouldEqual, "U12")
			So(r.Scores["40m_dash"], ShouldAlmostEqual, 4.52, 1e-9)
			So(r.Scores["vertical_jump"], ShouldAlmostEqual, 32.0, 1e-9)
			So(r.Warnings, ShouldBeEmpty)
		})

		Convey("Dedicated name columns outrank a combined name", func() {
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Wrong Person",
				"Jersey":      "7",
			}}, map[string]string{
				"Player Name": mapping.FieldName,
				"First":       mapping.FieldFirst,
				"Last":        mapping.FieldLast,
				"Jersey":      mapping.FieldNumber,
			}, drills)

			So(rows[0].First, ShouldEqual, "Wrong")
			So(rows[0].Last, ShouldEqual, "Person")

			rows = normalize.Rows([]model.RawRow{{
				"Player Name": "Wrong Person",
				"First":       "Jane",
				"Last":        "Doe",
			}}, map[string]string{
				"Player Name": mapping.FieldName,
				"First":       mapping.FieldFirst,
				"Last":        mapping.FieldLast,
			}, drills)

			So(rows[0].First, ShouldEqual, "Jane")
			So(rows[0].Last, ShouldEqual, "Doe")
		})

		Convey("A malformed number cell marks the row invalid", func() {
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Jane Doe",
				"Jersey":      "abc",
				"40-Yard":     "4.52",
			}}, fm, drills)

			r := rows[0]
			So(r.Number, ShouldBeNil)
			So(r.Errors, ShouldHaveLength, 1)
			So(r.Errors[0], ShouldContainSubstring, `"abc"`)
		})

		Convey("Out-of-range scores are dropped with a warning", func() {
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Jane Doe",
				"40-Yard":     "2.1",
				"Vertical":    "32",
			}}, fm, drills)

			r := rows[0]
			_, ok := r.Scores["40m_dash"]
			So(ok, ShouldBeFalse)
			So(r.Scores["vertical_jump"], ShouldAlmostEqual, 32.0, 1e-9)
			So(r.Warnings, ShouldHaveLength, 1)
			So(r.Warnings[0], ShouldContainSubstring, "outside range")
			So(r.Errors, ShouldBeEmpty)
		})

		Convey("Unparseable score cells are dropped with a warning", func() {
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Jane Doe",
				"40-Yard":     "DNF",
				"Vertical":    "32",
			}}, fm, drills)

			r := rows[0]
			_, ok := r.Scores["40m_dash"]
			So(ok, ShouldBeFalse)
			So(r.Scores["vertical_jump"], ShouldAlmostEqual, 32.0, 1e-9)
			So(r.Warnings, ShouldHaveLength, 1)
		})

		Convey("Empty cells leave fields absent", func() {
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Jane Doe",
				"Jersey":      "",
				"40-Yard":     "   ",
			}}, fm, drills)

			r := rows[0]
			So(r.Number, ShouldBeNil)
			So(r.Scores, ShouldBeEmpty)
		})

		Convey("Scores for inactive drills are ignored", func() {
			withInactive := schema.BaseTemplates()["football"].Drills
			for i := range withInactive {
				if withInactive[i].Key == "vertical_jump" {
					withInactive[i].Active = false
				}
			}
			rows := normalize.Rows([]model.RawRow{{
				"Player Name": "Jane Doe",
				"Vertical":    "32",
			}}, fm, withInactive)

			So(rows[0].Scores, ShouldBeEmpty)
		})
	})
}
