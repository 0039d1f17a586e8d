package predict_test

import (
	"context"
	"testing"

	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/predict"
	. "github.com/smartystreets/goconvey/convey"
)

func item(id string, x, y, z, w, h, d, weight float64) model.Item {
	return model.Item{
		ID:         id,
		Position:   model.Vec3{X: x, Y: y, Z: z},
		Dimensions: model.Dimensions{Width: w, Height: h, Depth: d},
		Weight:     weight,
	}
}

func TestHeuristicScorer(t *testing.T) {
	Convey("Given the heuristic scorer", t, func() {
		s := predict.NewHeuristicScorer()
		ctx := context.Background()
		c := model.DefaultContainer()

		Convey("When the arrangement is well supported and bottom heavy", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 20, 10, 20, 30),
				item("top", 0, 10, 0, 20, 10, 20, 10),
			}
			r, err := s.Score(ctx, items, c)

			Convey("Then no penalty applies", func() {
				So(err, ShouldBeNil)
				So(r.NormalizedScore, ShouldEqual, 1.0)
				So(r.Score, ShouldEqual, 100.0)
				So(r.RiskAssessment, ShouldEqual, "Low Risk")
				So(r.IsSafe, ShouldBeTrue)
				So(r.Source, ShouldEqual, "heuristic")
			})
		})

		Convey("When a raised item is poorly supported", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 10),
				item("top", 6, 10, 0, 10, 10, 10, 5), // 40% support
			}
			r, err := s.Score(ctx, items, c)

			Convey("Then the support penalty applies", func() {
				So(err, ShouldBeNil)
				So(r.NormalizedScore, ShouldAlmostEqual, 0.4, 1e-9)
				So(r.RiskAssessment, ShouldEqual, "High Risk")
				So(r.IsSafe, ShouldBeFalse)
			})
		})

		Convey("When a heavy item rests on a much lighter one", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 20, 10, 20, 5),
				item("top", 0, 10, 0, 20, 10, 20, 10), // ratio 2.0 > 1.5
			}
			r, err := s.Score(ctx, items, c)

			Convey("Then the weight penalty applies", func() {
				So(err, ShouldBeNil)
				So(r.NormalizedScore, ShouldAlmostEqual, 0.7, 1e-9)
				So(r.RiskAssessment, ShouldEqual, "Medium Risk")
			})
		})

		Convey("When both rules are violated", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 2),
				item("top", 6, 10, 0, 10, 10, 10, 10),
			}
			r, err := s.Score(ctx, items, c)

			Convey("Then penalties stack and clamp at zero", func() {
				So(err, ShouldBeNil)
				So(r.NormalizedScore, ShouldAlmostEqual, 0.1, 1e-9)
			})
		})

		Convey("When the arrangement is empty", func() {
			r, err := s.Score(ctx, nil, c)

			Convey("Then an empty stack is perfectly stable", func() {
				So(err, ShouldBeNil)
				So(r.NormalizedScore, ShouldEqual, 1.0)
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := s.Score(cancelled, nil, c)
			So(err, ShouldNotBeNil)
		})

		Convey("When an item is malformed", func() {
			bad := item("", 0, 0, 0, 10, 10, 10, 1)
			_, err := s.Score(ctx, []model.Item{bad}, c)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestResultBands(t *testing.T) {
	Convey("Given scorer results across the score range", t, func() {
		s := predict.NewHeuristicScorer()
		ctx := context.Background()
		c := model.DefaultContainer()

		Convey("A full score reports maximum confidence", func() {
			r, err := s.Score(ctx, nil, c)
			So(err, ShouldBeNil)
			So(r.Confidence, ShouldEqual, 1.0)
		})

		Convey("A score near the middle reports low confidence", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 10),
				item("top", 6, 10, 0, 10, 10, 10, 5),
			}
			r, err := s.Score(ctx, items, c)
			So(err, ShouldBeNil)
			So(r.Confidence, ShouldAlmostEqual, 0.2, 1e-9)
		})
	})
}
