package port

import "context"

// WeightStore отдаёт непрозрачный блоб весов по идентификатору модели.
type WeightStore interface {
	Fetch(ctx context.Context, modelID string) ([]byte, error)
}
