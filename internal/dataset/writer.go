package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/gzip"

	"github.com/okian/stacksafe/internal/domain/feature"
	"github.com/okian/stacksafe/internal/domain/model"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Writer persists labeled samples to an output sink.
type Writer interface {
	// Write appends one sample.
	Write(s model.Sample) error

	// Close flushes buffered data and releases the sink.
	Close() error
}

// NewFileWriter creates a writer for the given path and format. With
// gzipped set, output is compressed transparently.
func NewFileWriter(path, format string, gzipped bool, container model.Container) (Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	var sink io.WriteCloser = f
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(f)
		sink = gz
	}

	closeAll := func() error {
		if gz != nil {
			if err := gz.Close(); err != nil {
				f.Close()
				return err
			}
		}
		return f.Close()
	}

	switch format {
	case FormatJSON:
		return &jsonWriter{sink: sink, closeAll: closeAll}, nil
	case FormatCSV:
		w := &csvWriter{
			cw:        csv.NewWriter(sink),
			closeAll:  closeAll,
			container: container,
		}
		if err := w.writeHeader(); err != nil {
			closeAll()
			return nil, err
		}
		return w, nil
	default:
		closeAll()
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// jsonWriter streams samples as one JSON array.
type jsonWriter struct {
	sink     io.Writer
	closeAll func() error
	count    int
}

func (w *jsonWriter) Write(s model.Sample) error {
	prefix := ",\n"
	if w.count == 0 {
		prefix = "[\n"
	}
	if _, err := io.WriteString(w.sink, prefix); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.sink.Write(data); err != nil {
		return err
	}

	w.count++
	return nil
}

func (w *jsonWriter) Close() error {
	terminator := "\n]\n"
	if w.count == 0 {
		terminator = "[]\n"
	}
	if _, err := io.WriteString(w.sink, terminator); err != nil {
		w.closeAll()
		return err
	}
	return w.closeAll()
}

// csvWriter emits the extracted feature matrix plus the label, ready for
// a training pipeline that skips feature extraction.
type csvWriter struct {
	cw        *csv.Writer
	closeAll  func() error
	container model.Container
}

func (w *csvWriter) writeHeader() error {
	header := make([]string, 0, feature.VectorSize+1)
	for i := 0; i < feature.VectorSize; i++ {
		header = append(header, fmt.Sprintf("f%02d", i))
	}
	header = append(header, "score")
	return w.cw.Write(header)
}

func (w *csvWriter) Write(s model.Sample) error {
	vec, err := feature.Extract(s.Items, w.container)
	if err != nil {
		return err
	}

	row := make([]string, 0, len(vec)+1)
	for _, v := range vec {
		row = append(row, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	row = append(row, strconv.FormatFloat(s.StabilityScore, 'g', -1, 64))
	return w.cw.Write(row)
}

func (w *csvWriter) Close() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		w.closeAll()
		return err
	}
	return w.closeAll()
}
