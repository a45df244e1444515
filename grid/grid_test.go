package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix([][]string{
		{"A", "1"},
		{"B", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Height())
	assert.Equal(t, 2, m.Width())
	assert.Equal(t, "A", m.CellText(0, 0))
	assert.Equal(t, "", m.CellText(1, 1))
}

func TestNewMatrix_Ragged(t *testing.T) {
	_, err := NewMatrix([][]string{
		{"A", "1", "x"},
		{"B"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedGrid))
	assert.Contains(t, err.Error(), "row 1 has 1 cells, want 3")
}

func TestNewMatrix_Empty(t *testing.T) {
	m, err := NewMatrix(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Height())
	assert.Equal(t, 0, m.Width())
}

func TestNewMatrix_CopiesInput(t *testing.T) {
	rows := [][]string{{"A", "1"}}
	m := MustMatrix(rows)
	rows[0][0] = "changed"

	assert.Equal(t, "A", m.CellText(0, 0))
}

func TestMustMatrix_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustMatrix([][]string{{"A"}, {"B", "C"}})
	})
}

func TestPad(t *testing.T) {
	m := Pad([][]string{
		{"A"},
		{"B", "1", "2"},
		{},
	})

	assert.Equal(t, 3, m.Height())
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, [][]string{
		{"A", "", ""},
		{"B", "1", "2"},
		{"", "", ""},
	}, m.Rows())
	assert.NoError(t, Validate(m))
}

type negativeGrid struct{}

func (negativeGrid) Height() int              { return -1 }
func (negativeGrid) Width() int               { return 2 }
func (negativeGrid) CellText(_, _ int) string { return "" }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr bool
	}{
		{name: "nil", grid: nil, wantErr: true},
		{name: "negative", grid: negativeGrid{}, wantErr: true},
		{name: "rectangular", grid: MustMatrix([][]string{{"a", "b"}}), wantErr: false},
		{name: "ragged matrix", grid: &Matrix{rows: [][]string{{"a", "b"}, {"c"}}, width: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.grid)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedGrid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// hugeGrid reports the full xlsx sheet size without holding any cells.
type hugeGrid struct{}

func (hugeGrid) Height() int              { return 1048576 }
func (hugeGrid) Width() int               { return 16384 }
func (hugeGrid) CellText(_, _ int) string { return "" }

func TestValidate_TooLarge(t *testing.T) {
	err := Validate(hugeGrid{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGridTooLarge)
	assert.False(t, errors.Is(err, ErrMalformedGrid))

	assert.NoError(t, Validate(Pad(make([][]string, 1024))))
}

func TestDump(t *testing.T) {
	m := MustMatrix([][]string{
		{"A", ""},
		{"", "2"},
	})
	assert.Equal(t, "A\t·\n·\t2", Dump(m))
}
