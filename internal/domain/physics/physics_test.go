package physics_test

import (
	"testing"

	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/physics"
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

func TestCenterOfGravity(t *testing.T) {
	Convey("Given a 100x100x100 container", t, func() {
		c := model.DefaultContainer()

		Convey("When no items are placed", func() {
			cog := physics.CenterOfGravity(nil, c)

			Convey("Then the CoG defaults to the horizontal center at floor height", func() {
				So(cog.X, ShouldEqual, 50)
				So(cog.Y, ShouldEqual, 0)
				So(cog.Z, ShouldEqual, 50)
			})
		})

		Convey("When every item has zero weight", func() {
			items := []model.Item{item("a", 0, 0, 0, 10, 10, 10, 0)}
			cog := physics.CenterOfGravity(items, c)

			Convey("Then the default applies as well", func() {
				So(cog.X, ShouldEqual, 50)
				So(cog.Y, ShouldEqual, 0)
				So(cog.Z, ShouldEqual, 50)
			})
		})

		Convey("When a single weighted item is placed", func() {
			items := []model.Item{item("a", 10, 0, 20, 10, 10, 10, 5)}
			cog := physics.CenterOfGravity(items, c)

			Convey("Then the CoG is the item center", func() {
				So(cog.X, ShouldEqual, 15)
				So(cog.Y, ShouldEqual, 5)
				So(cog.Z, ShouldEqual, 25)
			})
		})

		Convey("When two items have unequal weights", func() {
			items := []model.Item{
				item("a", 0, 0, 0, 10, 10, 10, 1),  // center x=5
				item("b", 20, 0, 0, 10, 10, 10, 3), // center x=25
			}
			cog := physics.CenterOfGravity(items, c)

			Convey("Then the CoG is pulled toward the heavier item", func() {
				So(cog.X, ShouldEqual, 20) // (5*1 + 25*3) / 4
			})
		})

		Convey("When two equal-weight items mirror each other about the container center", func() {
			items := []model.Item{
				item("a", 10, 0, 0, 10, 10, 10, 4), // center x=15
				item("b", 80, 0, 0, 10, 10, 10, 4), // center x=85
			}
			cog := physics.CenterOfGravity(items, c)

			Convey("Then the CoG sits exactly on the central axis", func() {
				So(cog.X, ShouldEqual, c.Width/2)
			})
		})
	})
}

func TestAverageSupportRatio(t *testing.T) {
	Convey("Given an arrangement", t, func() {
		Convey("When all items rest on the floor", func() {
			items := []model.Item{
				item("a", 0, 0, 0, 10, 10, 10, 1),
				item("b", 20, 0, 0, 10, 10, 10, 1),
			}

			Convey("Then the average ratio is the vacuous 1.0", func() {
				So(physics.AverageSupportRatio(items), ShouldEqual, 1.0)
			})
		})

		Convey("When a raised item is fully supported", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 1),
				item("top", 0, 10, 0, 10, 10, 10, 1),
			}

			So(physics.AverageSupportRatio(items), ShouldEqual, 1.0)
		})

		Convey("When a raised item hangs halfway off its supporter", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 1),
				item("top", 5, 10, 0, 10, 10, 10, 1),
			}

			So(physics.AverageSupportRatio(items), ShouldEqual, 0.5)
		})

		Convey("When a raised item has no supporter at all", func() {
			items := []model.Item{
				item("floater", 0, 50, 0, 10, 10, 10, 1),
			}

			So(physics.AverageSupportRatio(items), ShouldEqual, 0)
		})

		Convey("When two supporters together cover the whole base", func() {
			items := []model.Item{
				item("left", 0, 0, 0, 5, 10, 10, 1),
				item("right", 5, 0, 0, 5, 10, 10, 1),
				item("top", 0, 10, 0, 10, 10, 10, 1),
			}

			So(physics.AverageSupportRatio(items), ShouldEqual, 1.0)
		})
	})
}

func TestTotalOverhang(t *testing.T) {
	Convey("Given an arrangement", t, func() {
		Convey("When everything is on the floor", func() {
			items := []model.Item{item("a", 0, 0, 0, 10, 10, 10, 1)}

			So(physics.TotalOverhang(items), ShouldEqual, 0)
		})

		Convey("When a raised item is fully supported", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 1),
				item("top", 0, 10, 0, 10, 10, 10, 1),
			}

			So(physics.TotalOverhang(items), ShouldEqual, 0)
		})

		Convey("When a raised item hangs halfway off", func() {
			items := []model.Item{
				item("bottom", 0, 0, 0, 10, 10, 10, 1),
				item("top", 5, 10, 0, 10, 10, 10, 1),
			}

			Convey("Then the overhang is the unsupported area over the perimeter", func() {
				// 50 unsupported over a perimeter of 40
				So(physics.TotalOverhang(items), ShouldEqual, 1.25)
			})
		})

		Convey("When a raised item floats with no support", func() {
			items := []model.Item{item("floater", 0, 50, 0, 10, 10, 10, 1)}

			Convey("Then the whole base area counts as overhang", func() {
				So(physics.TotalOverhang(items), ShouldEqual, 2.5) // 100 / 40
			})
		})
	})
}
