package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldhouse/combine/internal/adapters/repository"
	"github.com/fieldhouse/combine/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func participant(id, name string) *model.Participant {
	return &model.Participant{
		ID:      id,
		EventID: "ev-1",
		Name:    name,
		Scores:  map[string]float64{"40m_dash": 4.5},
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()

		Convey("Get on a missing participant reports not found", func() {
			_, err := s.Get(ctx, "ev-1", "nope")
			So(err, ShouldWrap, repository.ErrNotFound)
		})

		Convey("ListByEvent returns an empty slice", func() {
			ps, err := s.ListByEvent(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(ps, ShouldBeEmpty)
		})

		Convey("ApplyBatch lands creates, updates, and the log together", func() {
			err := s.ApplyBatch(ctx, "ev-1", repository.Batch{
				Creates: []*model.Participant{participant("b", "B"), participant("a", "A")},
				Log: &model.ImportLogEntry{
					ID:        "imp-1",
					EventID:   "ev-1",
					Timestamp: time.Now(),
					Created:   2,
				},
			})
			So(err, ShouldBeNil)

			Convey("And listing returns them in id order", func() {
				ps, err := s.ListByEvent(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(ps, ShouldHaveLength, 2)
				So(ps[0].ID, ShouldEqual, "a")
				So(ps[1].ID, ShouldEqual, "b")
			})

			Convey("And the count reflects the batch", func() {
				n, err := s.CountByEvent(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})

			Convey("And the import log recorded the run", func() {
				log, err := s.ImportLog(ctx, "ev-1")
				So(err, ShouldBeNil)
				So(log, ShouldHaveLength, 1)
				So(log[0].Created, ShouldEqual, 2)
			})

			Convey("And other events stay empty", func() {
				n, err := s.CountByEvent(ctx, "ev-2")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})

			Convey("And updates replace the stored snapshot", func() {
				up := participant("a", "A")
				up.Scores["vertical_jump"] = 30

				err := s.ApplyBatch(ctx, "ev-1", repository.Batch{
					Updates: []*model.Participant{up},
				})
				So(err, ShouldBeNil)

				got, err := s.Get(ctx, "ev-1", "a")
				So(err, ShouldBeNil)
				So(got.Scores["vertical_jump"], ShouldAlmostEqual, 30.0, 1e-9)
			})
		})

		Convey("Stored snapshots never alias caller memory", func() {
			p := participant("a", "A")
			So(s.ApplyBatch(ctx, "ev-1", repository.Batch{
				Creates: []*model.Participant{p},
			}), ShouldBeNil)

			p.Scores["40m_dash"] = 99

			got, err := s.Get(ctx, "ev-1", "a")
			So(err, ShouldBeNil)
			So(got.Scores["40m_dash"], ShouldAlmostEqual, 4.5, 1e-9)

			Convey("In both directions", func() {
				got.Scores["40m_dash"] = 1

				again, err := s.Get(ctx, "ev-1", "a")
				So(err, ShouldBeNil)
				So(again.Scores["40m_dash"], ShouldAlmostEqual, 4.5, 1e-9)
			})
		})

		Convey("A closed store refuses everything", func() {
			So(s.Close(), ShouldBeNil)

			_, err := s.Get(ctx, "ev-1", "a")
			So(err, ShouldWrap, repository.ErrStoreClosed)
			_, err = s.ListByEvent(ctx, "ev-1")
			So(err, ShouldWrap, repository.ErrStoreClosed)
			So(s.ApplyBatch(ctx, "ev-1", repository.Batch{}), ShouldWrap, repository.ErrStoreClosed)
		})
	})
}
