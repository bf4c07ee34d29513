package entity

import (
	"fmt"
	"math"
)

// BoundingBox — прямоугольник в пиксельных координатах кадра.
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина в пикселях
	Height int // высота в пикселях
}

// Validate требует положительную площадь.
func (b BoundingBox) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: box %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	return nil
}

// Center возвращает координаты центра бокса.
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains сообщает, лежит ли точка внутри бокса.
func (b BoundingBox) Contains(x, y float32) bool {
	return x >= float32(b.X) && x < float32(b.X+b.Width) &&
		y >= float32(b.Y) && y < float32(b.Y+b.Height)
}

// Shift сдвигает бокс на (dx, dy) с округлением до целого пикселя.
func (b BoundingBox) Shift(dx, dy float64) BoundingBox {
	b.X += int(math.Round(dx))
	b.Y += int(math.Round(dy))
	return b
}

// ClampTo вписывает бокс целиком в границы кадра. Бокс крупнее кадра
// урезается до размера кадра.
func (b BoundingBox) ClampTo(frameWidth, frameHeight int) BoundingBox {
	if b.Width > frameWidth {
		b.Width = frameWidth
	}
	if b.Height > frameHeight {
		b.Height = frameHeight
	}
	if b.X < 0 {
		b.X = 0
	}
	if b.Y < 0 {
		b.Y = 0
	}
	if b.X+b.Width > frameWidth {
		b.X = frameWidth - b.Width
	}
	if b.Y+b.Height > frameHeight {
		b.Y = frameHeight - b.Height
	}
	return b
}
