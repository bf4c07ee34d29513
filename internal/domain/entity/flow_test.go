package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFlowField(t *testing.T) {
	f, err := NewFlowField(3, 2)
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	require.Len(t, f.DX, 6)
	require.Len(t, f.DY, 6)
}

func TestNewFlowField_InvalidDimensions(t *testing.T) {
	_, err := NewFlowField(0, 2)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFlowField_ValidateLengthMismatch(t *testing.T) {
	f := &FlowField{Width: 2, Height: 2, DX: make([]float32, 4), DY: make([]float32, 3)}
	require.ErrorIs(t, f.Validate(), ErrInvalidDimensions)
}

func TestFlowField_At(t *testing.T) {
	f, err := NewFlowField(3, 2)
	require.NoError(t, err)

	f.DX[1*3+2] = 1.5
	f.DY[1*3+2] = -0.5

	dx, dy := f.At(2, 1)
	require.EqualValues(t, 1.5, dx)
	require.EqualValues(t, -0.5, dy)
}
