package entity

import "errors"

// Таксономия ошибок движка. Все ошибки возвращаются синхронно из вызова,
// который их обнаружил, ничего не гасится внутри движка.
var (
	// ErrInsufficientFeatures — внутри выбранной области нет ни одной
	// отслеживаемой точки. Без нового выделения не восстанавливается.
	ErrInsufficientFeatures = errors.New("no trackable features inside the selected region")

	// ErrTrackingLost — валидных соответствий меньше порога. Трекер
	// возвращает прежний бокс, сессия продолжает жить.
	ErrTrackingLost = errors.New("tracking lost: too few valid correspondences")

	// ErrBackendUnavailable — бэкенд потока не смог инициализироваться,
	// выбранная стратегия недоступна целиком.
	ErrBackendUnavailable = errors.New("flow backend unavailable")

	// ErrInferenceFailed — инференс одного кадра вернул ошибку или
	// нечисловые значения. Падает кадр, а не сессия.
	ErrInferenceFailed = errors.New("flow inference failed")

	// ErrInvalidDimensions — нарушен размерный инвариант буфера или поля.
	// Всегда фатальна для текущего вызова.
	ErrInvalidDimensions = errors.New("invalid buffer dimensions")
)
