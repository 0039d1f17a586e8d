package dataset_test

import (
	"context"
	"testing"

	"github.com/okian/stacksafe/internal/dataset"
	"github.com/okian/stacksafe/internal/domain/geometry"
	"github.com/okian/stacksafe/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGeneratorDeterminism(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		ctx := context.Background()
		g1 := dataset.NewGenerator(dataset.WithSeed(42))
		g2 := dataset.NewGenerator(dataset.WithSeed(42))

		Convey("Then they produce identical samples", func() {
			for i := 0; i < 20; i++ {
				s1, err1 := g1.Sample(ctx, i)
				s2, err2 := g2.Sample(ctx, i)

				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(s1, ShouldResemble, s2)
			}
		})

		Convey("And sample identity is independent of generation order", func() {
			s5First, err := g1.Sample(ctx, 5)
			So(err, ShouldBeNil)

			_, _ = g2.Sample(ctx, 0)
			_, _ = g2.Sample(ctx, 9)
			s5Later, err := g2.Sample(ctx, 5)
			So(err, ShouldBeNil)

			So(s5Later, ShouldResemble, s5First)
		})

		Convey("But a different seed diverges", func() {
			g3 := dataset.NewGenerator(dataset.WithSeed(43))

			s1, _ := g1.Sample(ctx, 0)
			s3, _ := g3.Sample(ctx, 0)

			So(s3, ShouldNotResemble, s1)
		})

		Convey("And neighboring (seed, index) pairs do not share a stream", func() {
			// seed 42 index 1 and seed 43 index 0 would collide under a
			// plain seed+index derivation.
			g3 := dataset.NewGenerator(dataset.WithSeed(43))

			s1, err := g1.Sample(ctx, 1)
			So(err, ShouldBeNil)
			s3, err := g3.Sample(ctx, 0)
			So(err, ShouldBeNil)

			So(s3, ShouldNotResemble, s1)
		})
	})
}

func TestGeneratedArrangements(t *testing.T) {
	Convey("Given a generator with the default container", t, func() {
		ctx := context.Background()
		g := dataset.NewGenerator(dataset.WithSeed(7))
		c := g.Container()

		Convey("When generating many samples", func() {
			for i := 0; i < 200; i++ {
				s, err := g.Sample(ctx, i)
				So(err, ShouldBeNil)

				// Valid item lists with 1 to 6 items.
				So(model.ValidateItems(s.Items), ShouldBeNil)
				So(len(s.Items), ShouldBeBetweenOrEqual, 1, 6)

				// Labels live on the 0-100 scale.
				So(s.StabilityScore, ShouldBeBetweenOrEqual, 0, 100)

				// The first item sits on the floor, the rest stack on the
				// previous item's top face.
				So(s.Items[0].Position.Y, ShouldEqual, 0)
				for j := 1; j < len(s.Items); j++ {
					below := s.Items[j-1]
					So(s.Items[j].Position.Y, ShouldAlmostEqual,
						below.Position.Y+below.Dimensions.Height, geometry.SupportEpsilon)
				}

				// Horizontally inside the container.
				for _, it := range s.Items {
					So(it.Position.X, ShouldBeGreaterThanOrEqualTo, 0)
					So(it.Position.Z, ShouldBeGreaterThanOrEqualTo, 0)
					So(it.Position.X+it.Dimensions.Width, ShouldBeLessThanOrEqualTo, c.Width+1e-9)
					So(it.Position.Z+it.Dimensions.Depth, ShouldBeLessThanOrEqualTo, c.Depth+1e-9)
				}
			}
		})

		Convey("Then label diversity covers more than one risk band", func() {
			scores := map[bool]int{}
			for i := 0; i < 300; i++ {
				s, err := g.Sample(ctx, i)
				So(err, ShouldBeNil)
				scores[s.StabilityScore > 60]++
			}
			So(scores[true], ShouldBeGreaterThan, 0)
			So(scores[false], ShouldBeGreaterThan, 0)
		})
	})
}
