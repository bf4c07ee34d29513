package port

import (
	"context"

	"maskflow/internal/domain/entity"
)

// FlowProvider — бэкенд плотного оптического потока.
type FlowProvider interface {
	// Init готовит бэкенд к работе. Если исполнение невозможно,
	// возвращает ошибку с entity.ErrBackendUnavailable.
	Init(ctx context.Context) error

	// Flow оценивает поле смещений между двумя кадрами. Размер поля
	// определяется бэкендом и может не совпадать с размером кадров.
	Flow(ctx context.Context, prev, next *entity.ImageBuffer) (*entity.FlowField, error)

	// Close освобождает ресурсы бэкенда.
	Close() error
}

// FlowInference — нейронный оценщик потока как чёрный ящик: пара
// тензоров кадров → двухканальное поле на фиксированном разрешении.
type FlowInference interface {
	// Load загружает и валидирует веса модели, создаёт контекст исполнения.
	Load(ctx context.Context) error

	// InputSize возвращает фиксированное рабочее разрешение модели.
	InputSize() (width, height int)

	// Run выполняет инференс над двумя CHW-тензорами [3*H*W] со значениями
	// в [0,1] и возвращает поле [2*H*W]: сначала dx, затем dy, в пикселях
	// рабочего разрешения.
	Run(ctx context.Context, prev, next []float32) ([]float32, error)

	// Close освобождает состояние. Контекст исполнения намеренно
	// остаётся тёплым: повторная инициализация дорогая.
	Close() error
}
