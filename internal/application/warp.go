package app

import (
	"math"

	"maskflow/internal/domain/entity"
)

// Warp строит маску следующего кадра обратным варпом: каждая ячейка
// назначения берёт значение из (x-dx, y-dy) предыдущей маски через
// билинейное семплирование. Маска и поле могут иметь разные размеры:
// маска приводится к разрешению поля, результат возвращается в исходном
// разрешении маски. Чистая функция, без скрытого состояния.
func Warp(mask *entity.ImageBuffer, field *entity.FlowField) (*entity.ImageBuffer, error) {
	if err := mask.Validate(); err != nil {
		return nil, err
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}

	work := mask
	if mask.Width != field.Width || mask.Height != field.Height {
		resized, err := ResizeImage(mask, field.Width, field.Height)
		if err != nil {
			return nil, err
		}
		work = resized
	}

	out, err := entity.NewMask(field.Width, field.Height)
	if err != nil {
		return nil, err
	}

	i := 0
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			sx := float64(x) - float64(field.DX[i])
			sy := float64(y) - float64(field.DY[i])
			out.SetValueAt(x, y, byte(math.Round(BilinearSample(work, sx, sy))))
			i++
		}
	}

	if out.Width != mask.Width || out.Height != mask.Height {
		return ResizeImage(out, mask.Width, mask.Height)
	}
	return out, nil
}
