package app

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"maskflow/internal/domain/entity"
)

// ResizeImage выполняет билинейную передискретизацию буфера точно в
// targetWidth×targetHeight. Детерминирована для одинаковых входов.
func ResizeImage(src *entity.ImageBuffer, targetWidth, targetHeight int) (*entity.ImageBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("%w: resize target %dx%d", entity.ErrInvalidDimensions, targetWidth, targetHeight)
	}
	if targetWidth == src.Width && targetHeight == src.Height {
		return src.Clone(), nil
	}

	srcImg := &image.RGBA{
		Pix:    src.Pixels,
		Stride: src.Width * 4,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.BiLinear.Scale(dst, dst.Rect, srcImg, srcImg.Rect, xdraw.Src, nil)

	return &entity.ImageBuffer{Width: targetWidth, Height: targetHeight, Pixels: dst.Pix}, nil
}

// ResizeField передискретизирует поле смещений, каждый канал независимо.
// Величины смещений не масштабируются.
func ResizeField(src *entity.FlowField, targetWidth, targetHeight int) (*entity.FlowField, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("%w: resize target %dx%d", entity.ErrInvalidDimensions, targetWidth, targetHeight)
	}

	dst, err := entity.NewFlowField(targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}

	scaleX := float64(src.Width) / float64(targetWidth)
	scaleY := float64(src.Height) / float64(targetHeight)
	i := 0
	for y := 0; y < targetHeight; y++ {
		sy := (float64(y)+0.5)*scaleY - 0.5
		for x := 0; x < targetWidth; x++ {
			sx := (float64(x)+0.5)*scaleX - 0.5
			dst.DX[i] = float32(sampleFloatPlane(src.DX, src.Width, src.Height, sx, sy))
			dst.DY[i] = float32(sampleFloatPlane(src.DY, src.Width, src.Height, sx, sy))
			i++
		}
	}

	return dst, nil
}

// BilinearSample семплирует значение маски (канал R) в дробной точке.
// Координаты зажимаются в [0,W-1]×[0,H-1]: выход за кадр даёт значение
// ближайшего краевого пикселя, не обёртку и не ноль.
func BilinearSample(b *entity.ImageBuffer, x, y float64) float64 {
	x = clampFloat(x, 0, float64(b.Width-1))
	y = clampFloat(y, 0, float64(b.Height-1))

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > b.Width-1 {
		x1 = b.Width - 1
	}
	if y1 > b.Height-1 {
		y1 = b.Height - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := float64(b.ValueAt(x0, y0))
	v10 := float64(b.ValueAt(x1, y0))
	v01 := float64(b.ValueAt(x0, y1))
	v11 := float64(b.ValueAt(x1, y1))

	top := v00*(1-fx) + v10*fx
	bottom := v01*(1-fx) + v11*fx
	return top*(1-fy) + bottom*fy
}

func sampleFloatPlane(values []float32, width, height int, x, y float64) float64 {
	x = clampFloat(x, 0, float64(width-1))
	y = clampFloat(y, 0, float64(height-1))

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > width-1 {
		x1 = width - 1
	}
	if y1 > height-1 {
		y1 = height - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := float64(values[y0*width+x0])
	v10 := float64(values[y0*width+x1])
	v01 := float64(values[y1*width+x0])
	v11 := float64(values[y1*width+x1])

	top := v00*(1-fx) + v10*fx
	bottom := v01*(1-fx) + v11*fx
	return top*(1-fy) + bottom*fy
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
