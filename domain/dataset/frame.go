package dataset

import (
	"fmt"

	"goresid/domain/core"
)

// Frame is a column-oriented table of float64 features with an optional
// row index. Columns keep their insertion order.
type Frame struct {
	Index   []string             `json:"index,omitempty"`
	Columns []string             `json:"columns"`
	data    map[string][]float64
	rows    int
}

// NewFrame builds a frame from parallel column slices. Every column must have
// the same length, and index (when given) must match it.
func NewFrame(columns []string, values [][]float64, index []string) (*Frame, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("%w: %d column names for %d columns", core.ErrShapeMismatch, len(columns), len(values))
	}

	f := &Frame{
		Columns: make([]string, 0, len(columns)),
		data:    make(map[string][]float64, len(columns)),
		rows:    -1,
	}
	for i, name := range columns {
		if err := f.AddColumn(name, values[i]); err != nil {
			return nil, err
		}
	}
	if f.rows < 0 {
		f.rows = len(index)
	}
	if index != nil {
		if len(index) != f.rows {
			return nil, core.NewShapeError("index", len(index), f.rows)
		}
		f.Index = append([]string(nil), index...)
	}
	return f, nil
}

// AddColumn appends a column, copying its values.
func (f *Frame) AddColumn(name string, values []float64) error {
	if f.data == nil {
		f.data = make(map[string][]float64)
		f.rows = -1
	}
	if _, exists := f.data[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if f.rows >= 0 && len(values) != f.rows {
		return core.NewShapeError(fmt.Sprintf("column %q", name), len(values), f.rows)
	}
	f.rows = len(values)
	f.Columns = append(f.Columns, name)
	f.data[name] = append([]float64(nil), values...)
	return nil
}

// Rows returns the number of observations.
func (f *Frame) Rows() int {
	if f.rows < 0 {
		return 0
	}
	return f.rows
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.Columns)
}

// HasColumn reports whether name is a column of the frame.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns the values for name. The slice is shared; callers must not
// modify it.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.data[name]
	return v, ok
}

// Select returns a new frame restricted to names, in the order given.
func (f *Frame) Select(names []string) (*Frame, error) {
	values := make([][]float64, len(names))
	for i, name := range names {
		col, ok := f.data[name]
		if !ok {
			return nil, core.NewNotFoundError(core.ErrColumnNotFound, name)
		}
		values[i] = col
	}
	sub, err := NewFrame(names, values, f.Index)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		sub.rows = f.Rows()
	}
	return sub, nil
}

// Series is a single column of observations with an optional row index.
type Series struct {
	Name   string    `json:"name,omitempty"`
	Index  []string  `json:"index,omitempty"`
	Values []float64 `json:"values"`
}

// NewSeries creates a series, copying values and index.
func NewSeries(name string, values []float64, index []string) (*Series, error) {
	if index != nil && len(index) != len(values) {
		return nil, core.NewShapeError("series index", len(index), len(values))
	}
	s := &Series{Name: name, Values: append([]float64(nil), values...)}
	if index != nil {
		s.Index = append([]string(nil), index...)
	}
	return s, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// CheckAligned verifies that every index label of target exists in frame.
// Frames or series without labels are aligned by position only.
func CheckAligned(frame *Frame, target *Series) error {
	if len(frame.Index) == 0 || len(target.Index) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(frame.Index))
	for _, label := range frame.Index {
		known[label] = struct{}{}
	}
	for _, label := range target.Index {
		if _, ok := known[label]; !ok {
			return fmt.Errorf("%w: label %q missing from frame", core.ErrMisaligned, label)
		}
	}
	return nil
}

// SplitTarget removes column name from the frame and returns it as a series
// sharing the frame's index.
func (f *Frame) SplitTarget(name string) (*Frame, *Series, error) {
	target, ok := f.data[name]
	if !ok {
		return nil, nil, core.NewNotFoundError(core.ErrColumnNotFound, name)
	}
	rest := make([]string, 0, len(f.Columns)-1)
	for _, c := range f.Columns {
		if c != name {
			rest = append(rest, c)
		}
	}
	features, err := f.Select(rest)
	if err != nil {
		return nil, nil, err
	}
	series, err := NewSeries(name, target, f.Index)
	if err != nil {
		return nil, nil, err
	}
	return features, series, nil
}
