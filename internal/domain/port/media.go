package port

import (
	"context"

	"maskflow/internal/domain/entity"
)

// FrameSource — упорядоченный источник кадров. Кадры приходят строго
// хронологически, без пропусков; конец потока — io.EOF.
type FrameSource interface {
	Next(ctx context.Context) (*entity.ImageBuffer, error)
	Close() error
}

// FrameSink — приёмник обработанных кадров.
type FrameSink interface {
	Write(ctx context.Context, frame *entity.ImageBuffer) error
	Close() error
}

// Inpainter — внешняя функция затирания: кадр + маска → кадр.
// Движок её не вызывает, это дело оркестрирующего конвейера.
type Inpainter interface {
	Inpaint(ctx context.Context, frame, mask *entity.ImageBuffer) (*entity.ImageBuffer, error)
}
