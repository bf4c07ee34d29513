package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"maskflow/internal/domain/entity"
)

func TestWarp_IdentityOnZeroField(t *testing.T) {
	mask, err := entity.NewMask(8, 6)
	require.NoError(t, err)
	mask.SetValueAt(2, 3, 255)
	mask.SetValueAt(3, 3, 128)
	mask.SetValueAt(7, 5, 64)

	field, err := entity.NewFlowField(8, 6)
	require.NoError(t, err)

	out, err := Warp(mask, field)
	require.NoError(t, err)
	require.Equal(t, mask.Pixels, out.Pixels)
}

func TestWarp_PreservesMaskDimensions(t *testing.T) {
	mask, err := entity.NewMask(10, 8)
	require.NoError(t, err)

	field, err := entity.NewFlowField(5, 4)
	require.NoError(t, err)

	out, err := Warp(mask, field)
	require.NoError(t, err)
	require.Equal(t, mask.Width, out.Width)
	require.Equal(t, mask.Height, out.Height)

	field2, err := entity.NewFlowField(20, 16)
	require.NoError(t, err)

	out2, err := Warp(mask, field2)
	require.NoError(t, err)
	require.Equal(t, mask.Width, out2.Width)
	require.Equal(t, mask.Height, out2.Height)
}

func TestWarp_UniformShiftMovesSquare(t *testing.T) {
	// Белый квадрат 20×20 в (40,40), поле всюду dx=5, dy=0.
	mask, err := entity.RasterizeBox(entity.BoundingBox{X: 40, Y: 40, Width: 20, Height: 20}, 100, 100)
	require.NoError(t, err)

	field, err := entity.NewFlowField(100, 100)
	require.NoError(t, err)
	for i := range field.DX {
		field.DX[i] = 5
	}

	out, err := Warp(mask, field)
	require.NoError(t, err)
	require.Equal(t, 100, out.Width)
	require.Equal(t, 100, out.Height)

	white := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			inside := x >= 45 && x < 65 && y >= 40 && y < 60
			v := out.ValueAt(x, y)
			if inside {
				require.EqualValues(t, 255, v, "expected white at (%d,%d)", x, y)
				white++
			} else {
				require.EqualValues(t, 0, v, "expected background at (%d,%d)", x, y)
			}
		}
	}
	require.Equal(t, 400, white)
}

func TestWarp_OutOfFrameDisplacementClampsToEdge(t *testing.T) {
	mask, err := entity.NewMask(4, 4)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		mask.SetValueAt(0, y, 255)
	}

	field, err := entity.NewFlowField(4, 4)
	require.NoError(t, err)
	for i := range field.DX {
		field.DX[i] = 100 // источник далеко за левой границей
	}

	out, err := Warp(mask, field)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.EqualValues(t, 255, out.ValueAt(x, y))
		}
	}
}

func TestWarp_InvalidInputs(t *testing.T) {
	field, err := entity.NewFlowField(4, 4)
	require.NoError(t, err)

	bad := &entity.ImageBuffer{Width: 0, Height: 4}
	_, err = Warp(bad, field)
	require.ErrorIs(t, err, entity.ErrInvalidDimensions)

	mask, err := entity.NewMask(4, 4)
	require.NoError(t, err)
	badField := &entity.FlowField{Width: 4, Height: 4, DX: make([]float32, 2), DY: make([]float32, 16)}
	_, err = Warp(mask, badField)
	require.ErrorIs(t, err, entity.ErrInvalidDimensions)
}
