package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"maskflow/internal/domain/entity"
)

func TestResizeImage_ExactDimensions(t *testing.T) {
	src, err := entity.NewImageBuffer(10, 7)
	require.NoError(t, err)

	dst, err := ResizeImage(src, 33, 5)
	require.NoError(t, err)
	require.Equal(t, 33, dst.Width)
	require.Equal(t, 5, dst.Height)
	require.NoError(t, dst.Validate())
}

func TestResizeImage_Deterministic(t *testing.T) {
	src, err := entity.NewImageBuffer(16, 16)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetValueAt(x, y, byte(x*16+y))
		}
	}

	a, err := ResizeImage(src, 9, 5)
	require.NoError(t, err)
	b, err := ResizeImage(src, 9, 5)
	require.NoError(t, err)
	require.Equal(t, a.Pixels, b.Pixels)
}

func TestResizeImage_SameSizeIsCopy(t *testing.T) {
	src, err := entity.NewImageBuffer(4, 4)
	require.NoError(t, err)

	dst, err := ResizeImage(src, 4, 4)
	require.NoError(t, err)
	require.Equal(t, src.Pixels, dst.Pixels)

	dst.SetValueAt(0, 0, 99)
	require.EqualValues(t, 0, src.ValueAt(0, 0))
}

func TestResizeImage_InvalidTarget(t *testing.T) {
	src, err := entity.NewImageBuffer(4, 4)
	require.NoError(t, err)

	_, err = ResizeImage(src, 0, 4)
	require.ErrorIs(t, err, entity.ErrInvalidDimensions)
}

func TestBilinearSample_Interpolates(t *testing.T) {
	b, err := entity.NewImageBuffer(2, 2)
	require.NoError(t, err)
	b.SetValueAt(0, 0, 10)
	b.SetValueAt(1, 0, 20)
	b.SetValueAt(0, 1, 30)
	b.SetValueAt(1, 1, 40)

	require.InDelta(t, 10, BilinearSample(b, 0, 0), 1e-9)
	require.InDelta(t, 25, BilinearSample(b, 0.5, 0.5), 1e-9)
	require.InDelta(t, 15, BilinearSample(b, 0.5, 0), 1e-9)
}

func TestBilinearSample_ClampsToEdge(t *testing.T) {
	b, err := entity.NewImageBuffer(2, 2)
	require.NoError(t, err)
	b.SetValueAt(0, 0, 10)
	b.SetValueAt(1, 0, 20)
	b.SetValueAt(0, 1, 30)
	b.SetValueAt(1, 1, 40)

	require.InDelta(t, 10, BilinearSample(b, -5, -5), 1e-9)
	require.InDelta(t, 40, BilinearSample(b, 10, 10), 1e-9)
	require.InDelta(t, 15, BilinearSample(b, 0.5, -3), 1e-9)
	require.InDelta(t, 30, BilinearSample(b, -1, 7), 1e-9)
}

func TestResizeField_UniformStaysUniform(t *testing.T) {
	src, err := entity.NewFlowField(8, 6)
	require.NoError(t, err)
	for i := range src.DX {
		src.DX[i] = 2.5
		src.DY[i] = -1.25
	}

	dst, err := ResizeField(src, 3, 5)
	require.NoError(t, err)
	require.Equal(t, 3, dst.Width)
	require.Equal(t, 5, dst.Height)
	for i := range dst.DX {
		require.InDelta(t, 2.5, dst.DX[i], 1e-6)
		require.InDelta(t, -1.25, dst.DY[i], 1e-6)
	}
}

func TestResizeField_InvalidTarget(t *testing.T) {
	src, err := entity.NewFlowField(4, 4)
	require.NoError(t, err)

	_, err = ResizeField(src, 4, -1)
	require.ErrorIs(t, err, entity.ErrInvalidDimensions)
}
