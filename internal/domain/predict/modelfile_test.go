package predict_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/stacksafe/internal/domain/predict"
	. "github.com/smartystreets/goconvey/convey"
)

func TestModelFileValidate(t *testing.T) {
	Convey("Given model artifacts", t, func() {
		Convey("A structurally sound artifact passes", func() {
			So(tinyModel().Validate(), ShouldBeNil)
		})

		Convey("An artifact with no layers fails", func() {
			mf := tinyModel()
			mf.Weights = nil
			mf.Biases = nil
			So(errors.Is(mf.Validate(), predict.ErrInvalidModel), ShouldBeTrue)
		})

		Convey("Mismatched weight and bias layer counts fail", func() {
			mf := tinyModel()
			mf.Biases = mf.Biases[:1]
			So(mf.Validate(), ShouldNotBeNil)
		})

		Convey("A broken layer chain fails", func() {
			mf := tinyModel()
			mf.Weights[1] = [][]float64{{0.5}} // 1 input row, hidden has 2 units
			So(mf.Validate(), ShouldNotBeNil)
		})

		Convey("A ragged weight matrix fails", func() {
			mf := tinyModel()
			mf.Weights[0][1] = []float64{1} // row 1 shorter than row 0
			So(mf.Validate(), ShouldNotBeNil)
		})

		Convey("A multi-unit output layer fails", func() {
			mf := tinyModel()
			mf.Weights[1] = [][]float64{{0.5, 0.5}, {0.25, 0.25}}
			mf.Biases[1] = []float64{0, 0}
			So(mf.Validate(), ShouldNotBeNil)
		})

		Convey("Scaler arrays must match the feature count", func() {
			mf := tinyModel()
			mf.ScalerMean = []float64{0}
			So(mf.Validate(), ShouldNotBeNil)
		})

		Convey("A zero scale entry fails", func() {
			mf := tinyModel()
			mf.ScalerScale[1] = 0
			So(mf.Validate(), ShouldNotBeNil)
		})
	})
}

func TestParseModelFile(t *testing.T) {
	Convey("Given serialized artifacts", t, func() {
		Convey("A valid JSON artifact parses", func() {
			data := []byte(`{
				"model_type": "MLPRegressor",
				"hidden_layer_sizes": [2],
				"n_features": 2,
				"weights": [[[1, -1], [0, 1]], [[0.5], [0.25]]],
				"biases": [[0, 0], [0.1]],
				"scaler_mean": [0, 0],
				"scaler_scale": [1, 1]
			}`)

			mf, err := predict.ParseModelFile(data)
			So(err, ShouldBeNil)
			So(mf.NFeatures, ShouldEqual, 2)
			So(len(mf.Weights), ShouldEqual, 2)
		})

		Convey("Malformed JSON is a load error", func() {
			_, err := predict.ParseModelFile([]byte(`{`))
			So(errors.Is(err, predict.ErrLoadModel), ShouldBeTrue)
		})

		Convey("Valid JSON with broken structure is a model error", func() {
			_, err := predict.ParseModelFile([]byte(`{"n_features": 2}`))
			So(errors.Is(err, predict.ErrInvalidModel), ShouldBeTrue)
		})
	})
}

func TestLoadModelFile(t *testing.T) {
	Convey("Given artifacts on disk", t, func() {
		dir := t.TempDir()

		Convey("A missing file is a load error", func() {
			_, err := predict.LoadModelFile(filepath.Join(dir, "missing.json"))
			So(errors.Is(err, predict.ErrLoadModel), ShouldBeTrue)
		})

		Convey("A valid file loads", func() {
			path := filepath.Join(dir, "model.json")
			data := []byte(`{
				"model_type": "MLPRegressor",
				"n_features": 2,
				"weights": [[[1, -1], [0, 1]], [[0.5], [0.25]]],
				"biases": [[0, 0], [0.1]],
				"scaler_mean": [0, 0],
				"scaler_scale": [1, 1]
			}`)
			So(os.WriteFile(path, data, 0o600), ShouldBeNil)

			mf, err := predict.LoadModelFile(path)
			So(err, ShouldBeNil)
			So(mf.ModelType, ShouldEqual, "MLPRegressor")
		})
	})
}
