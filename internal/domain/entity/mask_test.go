package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRasterizeBox(t *testing.T) {
	mask, err := RasterizeBox(BoundingBox{X: 2, Y: 1, Width: 3, Height: 2}, 8, 6)
	require.NoError(t, err)
	require.Equal(t, 8, mask.Width)
	require.Equal(t, 6, mask.Height)

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 2 && x < 5 && y >= 1 && y < 3
			if inside {
				require.EqualValues(t, 255, mask.ValueAt(x, y))
			} else {
				require.EqualValues(t, 0, mask.ValueAt(x, y))
			}
		}
	}
}

func TestRasterizeBox_ClampsToFrame(t *testing.T) {
	mask, err := RasterizeBox(BoundingBox{X: 6, Y: 4, Width: 5, Height: 5}, 8, 6)
	require.NoError(t, err)

	// Бокс вписан внутрь кадра, выхода за границы нет.
	require.EqualValues(t, 255, mask.ValueAt(7, 5))
	require.EqualValues(t, 255, mask.ValueAt(3, 1))
	require.EqualValues(t, 0, mask.ValueAt(2, 0))
}

func TestRasterizeBox_ZeroArea(t *testing.T) {
	_, err := RasterizeBox(BoundingBox{X: 0, Y: 0, Width: 0, Height: 5}, 8, 6)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}
