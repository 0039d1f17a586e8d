package geometry_test

import (
	"testing"

	"github.com/okian/stacksafe/internal/domain/geometry"
	"github.com/okian/stacksafe/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func box(id string, x, y, z, w, h, d float64) model.Item {
	return model.Item{
		ID:         id,
		Position:   model.Vec3{X: x, Y: y, Z: z},
		Dimensions: model.Dimensions{Width: w, Height: h, Depth: d},
		Weight:     1,
	}
}

func TestPrimitives(t *testing.T) {
	Convey("Given a placed item", t, func() {
		it := box("a", 10, 20, 30, 4, 6, 8)

		Convey("Then its center is the midpoint of each extent", func() {
			c := geometry.Center(it)
			So(c.X, ShouldEqual, 12)
			So(c.Y, ShouldEqual, 23)
			So(c.Z, ShouldEqual, 34)
		})

		Convey("Then base area, volume and perimeter follow the footprint", func() {
			So(geometry.BaseArea(it), ShouldEqual, 32)
			So(geometry.Volume(it), ShouldEqual, 192)
			So(geometry.Perimeter(it), ShouldEqual, 24)
		})
	})
}

func TestOverlapArea(t *testing.T) {
	Convey("Given two items on the same footprint", t, func() {
		a := box("a", 0, 0, 0, 10, 5, 10)

		Convey("When the second fully covers the first", func() {
			b := box("b", 0, 5, 0, 10, 5, 10)

			Convey("Then the overlap is the full base area", func() {
				So(geometry.OverlapArea(a, b), ShouldEqual, 100)
			})
		})

		Convey("When the second is shifted halfway", func() {
			b := box("b", 5, 5, 0, 10, 5, 10)

			Convey("Then the overlap is half the base area", func() {
				So(geometry.OverlapArea(a, b), ShouldEqual, 50)
			})
		})

		Convey("When the footprints only share an edge", func() {
			b := box("b", 10, 5, 0, 10, 5, 10)

			Convey("Then the overlap is zero", func() {
				So(geometry.OverlapArea(a, b), ShouldEqual, 0)
			})
		})

		Convey("When the footprints are disjoint", func() {
			b := box("b", 50, 5, 50, 10, 5, 10)

			Convey("Then the overlap is zero", func() {
				So(geometry.OverlapArea(a, b), ShouldEqual, 0)
			})
		})

		Convey("When the second is offset on both axes", func() {
			b := box("b", 4, 5, 7, 10, 5, 10)

			Convey("Then the overlap is symmetric in its arguments", func() {
				So(geometry.OverlapArea(a, b), ShouldEqual, 18) // 6 x 3
				So(geometry.OverlapArea(b, a), ShouldEqual, geometry.OverlapArea(a, b))
			})
		})
	})
}

func TestIsBelow(t *testing.T) {
	Convey("Given a supporter on the floor", t, func() {
		bottom := box("bottom", 0, 0, 0, 10, 10, 10)

		Convey("When an item rests exactly on its top face", func() {
			top := box("top", 2, 10, 2, 5, 5, 5)

			So(geometry.IsBelow(bottom, top), ShouldBeTrue)

			Convey("And the relation is not symmetric", func() {
				So(geometry.IsBelow(top, bottom), ShouldBeFalse)
			})
		})

		Convey("When the vertical gap is inside the epsilon tolerance", func() {
			top := box("top", 2, 10.0005, 2, 5, 5, 5)

			So(geometry.IsBelow(bottom, top), ShouldBeTrue)
		})

		Convey("When the vertical gap exceeds the tolerance", func() {
			top := box("top", 2, 10.01, 2, 5, 5, 5)

			So(geometry.IsBelow(bottom, top), ShouldBeFalse)
		})

		Convey("When the item floats beside the supporter at the right height", func() {
			top := box("top", 30, 10, 30, 5, 5, 5)

			Convey("Then adjacency without overlap does not count", func() {
				So(geometry.IsBelow(bottom, top), ShouldBeFalse)
			})
		})
	})
}
