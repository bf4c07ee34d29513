package entity

// Маска хранится как обычный RGBA-буфер в канонической форме:
// R=G=B=значение принадлежности (0 — фон, 255 — выделение), A=255.

// NewMask создаёт маску указанного размера, целиком фон.
func NewMask(width, height int) (*ImageBuffer, error) {
	return NewImageBuffer(width, height)
}

// RasterizeBox растеризует прямоугольную маску из бокса. Бокс
// предварительно вписывается в кадр.
func RasterizeBox(box BoundingBox, frameWidth, frameHeight int) (*ImageBuffer, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}

	mask, err := NewMask(frameWidth, frameHeight)
	if err != nil {
		return nil, err
	}

	box = box.ClampTo(frameWidth, frameHeight)
	for y := box.Y; y < box.Y+box.Height; y++ {
		for x := box.X; x < box.X+box.Width; x++ {
			mask.SetValueAt(x, y, 255)
		}
	}

	return mask, nil
}
