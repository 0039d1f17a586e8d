package feature_test

import (
	"testing"

	"github.com/okian/stacksafe/internal/domain/feature"
	"github.com/okian/stacksafe/internal/domain/model"
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

func TestExtractEmpty(t *testing.T) {
	Convey("Given no items", t, func() {
		v, err := feature.Extract(nil, model.DefaultContainer())

		Convey("Then the empty-arrangement sentinel is returned", func() {
			So(err, ShouldBeNil)
			So(len(v), ShouldEqual, feature.VectorSize)
			So(v[0], ShouldEqual, 0.5)
			So(v[1], ShouldEqual, 0)
			So(v[2], ShouldEqual, 0.5)
			So(v[3], ShouldEqual, 1.0)
			So(v[4], ShouldEqual, 0)
			So(v[5], ShouldEqual, 0)
			for i := 6; i < feature.VectorSize; i++ {
				So(v[i], ShouldEqual, 0)
			}
		})
	})
}

func TestExtractSingleItem(t *testing.T) {
	Convey("Given one item on the floor", t, func() {
		items := []model.Item{item("a", 10, 0, 10, 20, 10, 20, 10)}
		v, err := feature.Extract(items, model.DefaultContainer())

		So(err, ShouldBeNil)

		Convey("Then the aggregate slots reflect the physics metrics", func() {
			So(v[0], ShouldEqual, float32(0.2)) // CoG x = 20/100
			So(v[1], ShouldEqual, float32(0.05))
			So(v[2], ShouldEqual, float32(0.2))
			So(v[3], ShouldEqual, 1.0) // vacuous support
			So(v[4], ShouldEqual, 0)   // no overhang
			So(v[5], ShouldEqual, float32(0.1))
		})

		Convey("Then the first per-item block is populated", func() {
			So(v[6], ShouldEqual, float32(0.5))  // weight 10/20
			So(v[7], ShouldEqual, float32(0.04)) // volume 4000/1e5
			So(v[8], ShouldEqual, float32(0.04)) // base area 400/1e4
			So(v[9], ShouldEqual, float32(0.05)) // center y 5/100
		})

		Convey("Then the remaining per-item blocks stay zero", func() {
			for i := 10; i < feature.VectorSize; i++ {
				So(v[i], ShouldEqual, 0)
			}
		})
	})
}

func TestExtractSortsByHeight(t *testing.T) {
	Convey("Given items listed top-first", t, func() {
		top := item("top", 0, 10, 0, 10, 10, 10, 20)
		bottom := item("bottom", 0, 0, 0, 10, 10, 10, 4)
		v, err := feature.Extract([]model.Item{top, bottom}, model.DefaultContainer())

		So(err, ShouldBeNil)

		Convey("Then the per-item slots are ordered by y ascending", func() {
			So(v[6], ShouldEqual, float32(0.2)) // bottom weight 4/20
			So(v[10], ShouldEqual, float32(1))  // top weight 20/20 clamped
		})
	})
}

func TestExtractIgnoresItemsBeyondSix(t *testing.T) {
	Convey("Given seven stacked items", t, func() {
		c := model.DefaultContainer()
		items := make([]model.Item, 7)
		for i := range items {
			items[i] = item(
				string(rune('a'+i)),
				0, float64(i*10), 0,
				10, 10, 10,
				5,
			)
		}

		v7, err := feature.Extract(items, c)
		So(err, ShouldBeNil)

		Convey("Then the seventh item has no per-item slots", func() {
			v6, err := feature.Extract(items[:6], c)
			So(err, ShouldBeNil)
			So(v7[6:], ShouldResemble, v6[6:])
		})

		Convey("But it still moves the aggregate count slot", func() {
			So(v7[5], ShouldEqual, float32(0.7))
		})
	})
}

func TestExtractDeterminism(t *testing.T) {
	Convey("Given the same arrangement extracted twice", t, func() {
		items := []model.Item{
			item("a", 3, 0, 7, 25, 12, 18, 14),
			item("b", 5, 12, 9, 15, 10, 12, 6),
		}
		c := model.DefaultContainer()

		v1, err1 := feature.Extract(items, c)
		v2, err2 := feature.Extract(items, c)

		Convey("Then the vectors are bit-identical", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(v1, ShouldResemble, v2)
		})
	})
}

func TestExtractClamping(t *testing.T) {
	Convey("Given an oversized, overweight item", t, func() {
		items := []model.Item{item("huge", 0, 0, 0, 90, 90, 90, 500)}
		v, err := feature.Extract(items, model.DefaultContainer())

		So(err, ShouldBeNil)

		Convey("Then every slot stays inside [0,1]", func() {
			So(feature.Validate(v), ShouldBeNil)
			So(v[6], ShouldEqual, 1) // weight clamped
			So(v[7], ShouldEqual, 1) // volume clamped
		})
	})
}

func TestExtractRejectsInvalidInput(t *testing.T) {
	Convey("Given invalid inputs", t, func() {
		c := model.DefaultContainer()

		Convey("A zero container is rejected", func() {
			_, err := feature.Extract(nil, model.Container{})
			So(err, ShouldNotBeNil)
		})

		Convey("An item without an id is rejected", func() {
			bad := item("", 0, 0, 0, 10, 10, 10, 1)
			_, err := feature.Extract([]model.Item{bad}, c)
			So(err, ShouldNotBeNil)
		})

		Convey("Duplicate item ids are rejected", func() {
			a := item("same", 0, 0, 0, 10, 10, 10, 1)
			b := item("same", 30, 0, 30, 10, 10, 10, 1)
			_, err := feature.Extract([]model.Item{a, b}, c)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given candidate vectors", t, func() {
		Convey("A correct vector passes", func() {
			v := make([]float32, feature.VectorSize)
			So(feature.Validate(v), ShouldBeNil)
		})

		Convey("A short vector fails", func() {
			So(feature.Validate(make([]float32, 29)), ShouldNotBeNil)
		})

		Convey("An out-of-range slot fails", func() {
			v := make([]float32, feature.VectorSize)
			v[12] = 1.5
			So(feature.Validate(v), ShouldNotBeNil)
		})
	})
}
