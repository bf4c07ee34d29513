package entity

import "fmt"

// FlowField — плотное поле смещений от предыдущего кадра к текущему.
// Варп использует его в обратную сторону: тянет из (x-dx, y-dy).
type FlowField struct {
	Width  int
	Height int
	DX     []float32
	DY     []float32
}

// NewFlowField создаёт нулевое поле заданного размера.
func NewFlowField(width, height int) (*FlowField, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: flow field %dx%d", ErrInvalidDimensions, width, height)
	}
	return &FlowField{
		Width:  width,
		Height: height,
		DX:     make([]float32, width*height),
		DY:     make([]float32, width*height),
	}, nil
}

// Validate проверяет инвариант len(DX) == len(DY) == W*H.
func (f *FlowField) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil flow field", ErrInvalidDimensions)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: flow field %dx%d", ErrInvalidDimensions, f.Width, f.Height)
	}
	if len(f.DX) != f.Width*f.Height || len(f.DY) != f.Width*f.Height {
		return fmt.Errorf("%w: flow field %dx%d has dx=%d dy=%d, want %d",
			ErrInvalidDimensions, f.Width, f.Height, len(f.DX), len(f.DY), f.Width*f.Height)
	}
	return nil
}

// At возвращает смещение в ячейке (x, y).
func (f *FlowField) At(x, y int) (dx, dy float32) {
	i := y*f.Width + x
	return f.DX[i], f.DY[i]
}
