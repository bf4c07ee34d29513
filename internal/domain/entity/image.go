package entity

import "fmt"

// ImageBuffer — RGBA-кадр: сетка width×height, 4 байта на пиксель.
// Каждый шаг конвейера создаёт новый буфер, на месте ничего не меняется.
type ImageBuffer struct {
	Width  int
	Height int
	Pixels []byte // порядок каналов: R, G, B, A
}

// GrayBuffer — одноканальная версия кадра, вход для оценки потока.
type GrayBuffer struct {
	Width  int
	Height int
	Values []byte
}

// NewImageBuffer создаёт чёрный непрозрачный буфер заданного размера.
func NewImageBuffer(width, height int) (*ImageBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image %dx%d", ErrInvalidDimensions, width, height)
	}

	px := make([]byte, width*height*4)
	for i := 3; i < len(px); i += 4 {
		px[i] = 255
	}

	return &ImageBuffer{Width: width, Height: height, Pixels: px}, nil
}

// Validate проверяет инвариант len(Pixels) == W*H*4.
func (b *ImageBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil image buffer", ErrInvalidDimensions)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: image %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if len(b.Pixels) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: image %dx%d has %d bytes, want %d",
			ErrInvalidDimensions, b.Width, b.Height, len(b.Pixels), b.Width*b.Height*4)
	}
	return nil
}

// Clone возвращает независимую копию буфера.
func (b *ImageBuffer) Clone() *ImageBuffer {
	px := make([]byte, len(b.Pixels))
	copy(px, b.Pixels)
	return &ImageBuffer{Width: b.Width, Height: b.Height, Pixels: px}
}

// ValueAt возвращает значение канала R в точке (x, y).
// Для канонической маски это и есть значение принадлежности.
func (b *ImageBuffer) ValueAt(x, y int) byte {
	return b.Pixels[(y*b.Width+x)*4]
}

// SetValueAt записывает значение во все три цветовых канала, A=255.
func (b *ImageBuffer) SetValueAt(x, y int, v byte) {
	i := (y*b.Width + x) * 4
	b.Pixels[i] = v
	b.Pixels[i+1] = v
	b.Pixels[i+2] = v
	b.Pixels[i+3] = 255
}

// Grayscale сводит кадр к яркости (Rec. 601).
func (b *ImageBuffer) Grayscale() *GrayBuffer {
	values := make([]byte, b.Width*b.Height)
	for i := range values {
		p := i * 4
		r := int(b.Pixels[p])
		g := int(b.Pixels[p+1])
		bl := int(b.Pixels[p+2])
		values[i] = byte((299*r + 587*g + 114*bl) / 1000)
	}
	return &GrayBuffer{Width: b.Width, Height: b.Height, Values: values}
}

// Validate проверяет инвариант len(Values) == W*H.
func (g *GrayBuffer) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil gray buffer", ErrInvalidDimensions)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: gray %dx%d", ErrInvalidDimensions, g.Width, g.Height)
	}
	if len(g.Values) != g.Width*g.Height {
		return fmt.Errorf("%w: gray %dx%d has %d bytes, want %d",
			ErrInvalidDimensions, g.Width, g.Height, len(g.Values), g.Width*g.Height)
	}
	return nil
}
