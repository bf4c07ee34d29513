package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewImageBuffer(t *testing.T) {
	b, err := NewImageBuffer(4, 3)
	require.NoError(t, err)
	require.NoError(t, b.Validate())
	require.Len(t, b.Pixels, 4*3*4)
	require.EqualValues(t, 255, b.Pixels[3])
	require.EqualValues(t, 0, b.Pixels[0])
}

func TestNewImageBuffer_InvalidDimensions(t *testing.T) {
	_, err := NewImageBuffer(0, 3)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewImageBuffer(4, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestImageBuffer_ValidateLengthMismatch(t *testing.T) {
	b := &ImageBuffer{Width: 2, Height: 2, Pixels: make([]byte, 7)}
	require.ErrorIs(t, b.Validate(), ErrInvalidDimensions)
}

func TestImageBuffer_CloneIsIndependent(t *testing.T) {
	b, err := NewImageBuffer(2, 2)
	require.NoError(t, err)

	c := b.Clone()
	c.SetValueAt(0, 0, 200)

	require.EqualValues(t, 200, c.ValueAt(0, 0))
	require.EqualValues(t, 0, b.ValueAt(0, 0))
}

func TestImageBuffer_SetValueAtCanonical(t *testing.T) {
	b, err := NewImageBuffer(2, 2)
	require.NoError(t, err)

	b.SetValueAt(1, 1, 128)
	i := (1*2 + 1) * 4
	require.EqualValues(t, 128, b.Pixels[i])
	require.EqualValues(t, 128, b.Pixels[i+1])
	require.EqualValues(t, 128, b.Pixels[i+2])
	require.EqualValues(t, 255, b.Pixels[i+3])
}

func TestImageBuffer_Grayscale(t *testing.T) {
	b, err := NewImageBuffer(2, 1)
	require.NoError(t, err)

	// Белый пиксель слева, чёрный справа.
	b.Pixels[0], b.Pixels[1], b.Pixels[2] = 255, 255, 255

	g := b.Grayscale()
	require.NoError(t, g.Validate())
	require.EqualValues(t, 255, g.Values[0])
	require.EqualValues(t, 0, g.Values[1])
}

func TestGrayBuffer_Validate(t *testing.T) {
	g := &GrayBuffer{Width: 2, Height: 2, Values: make([]byte, 3)}
	require.ErrorIs(t, g.Validate(), ErrInvalidDimensions)
}
