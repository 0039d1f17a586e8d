package predict

import (
	"encoding/json"
	"fmt"
	"os"
)

// ModelFile is the serialized form of a trained feed-forward regressor:
// one weight matrix and bias vector per layer, plus the per-feature
// standardization arrays fitted at training time. Weight matrices are
// stored row-major with one row per input unit, matching the trainer's
// export.
type ModelFile struct {
	ModelType        string      `json:"model_type"`
	HiddenLayerSizes []int       `json:"hidden_layer_sizes"`
	NFeatures        int         `json:"n_features"`
	Weights          [][][]float64 `json:"weights"`
	Biases           [][]float64 `json:"biases"`
	ScalerMean       []float64   `json:"scaler_mean"`
	ScalerScale      []float64   `json:"scaler_scale"`
}

// LoadModelFile reads and validates a model artifact from disk.
func LoadModelFile(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadModel, err)
	}
	return ParseModelFile(data)
}

// ParseModelFile decodes and validates a model artifact.
func ParseModelFile(data []byte) (*ModelFile, error) {
	var mf ModelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadModel, err)
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return &mf, nil
}

// Validate checks the structural integrity of the artifact: layer
// chaining, bias lengths, a single output unit and usable scaler arrays.
func (mf *ModelFile) Validate() error {
	if len(mf.Weights) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidModel)
	}
	if len(mf.Weights) != len(mf.Biases) {
		return fmt.Errorf("%w: %d weight matrices but %d bias vectors",
			ErrInvalidModel, len(mf.Weights), len(mf.Biases))
	}
	if mf.NFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be > 0", ErrInvalidModel)
	}

	inputs := mf.NFeatures
	for l, w := range mf.Weights {
		if len(w) != inputs {
			return fmt.Errorf("%w: layer %d expects %d input rows, got %d",
				ErrInvalidModel, l, inputs, len(w))
		}
		if len(w[0]) == 0 {
			return fmt.Errorf("%w: layer %d has no units", ErrInvalidModel, l)
		}
		units := len(w[0])
		for r, row := range w {
			if len(row) != units {
				return fmt.Errorf("%w: layer %d row %d has %d columns, want %d",
					ErrInvalidModel, l, r, len(row), units)
			}
		}
		if len(mf.Biases[l]) != units {
			return fmt.Errorf("%w: layer %d bias length %d, want %d",
				ErrInvalidModel, l, len(mf.Biases[l]), units)
		}
		inputs = units
	}
	if inputs != 1 {
		return fmt.Errorf("%w: output layer must have exactly 1 unit, got %d",
			ErrInvalidModel, inputs)
	}

	if len(mf.ScalerMean) != mf.NFeatures {
		return fmt.Errorf("%w: scaler_mean length %d, want %d",
			ErrInvalidModel, len(mf.ScalerMean), mf.NFeatures)
	}
	if len(mf.ScalerScale) != mf.NFeatures {
		return fmt.Errorf("%w: scaler_scale length %d, want %d",
			ErrInvalidModel, len(mf.ScalerScale), mf.NFeatures)
	}
	for i, s := range mf.ScalerScale {
		if s == 0 {
			return fmt.Errorf("%w: scaler_scale[%d] is zero", ErrInvalidModel, i)
		}
	}
	return nil
}
