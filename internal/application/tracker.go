package app

import (
	"errors"
	"fmt"
	"sort"

	"maskflow/internal/domain/entity"
	"maskflow/internal/domain/port"
)

const (
	// DefaultMaxFeatures — верхняя граница числа точек при детекции.
	DefaultMaxFeatures = 200

	// minCorrespondences — минимум валидных пар, ниже которого сдвиг
	// бокса не оценивается.
	minCorrespondences = 4
)

// BoxTracker ведёт один прямоугольник по разреженному потоку точек.
// Модель движения — жёсткий сдвиг: медиана пос-точечных смещений по X и Y
// отбрасывает точки, уехавшие на фон или сматченные ошибочно.
// Жизненный цикл: NewBoxTracker → Init → Track* → Close; ровно один
// экземпляр на активную сессию.
type BoxTracker struct {
	matcher     port.FeatureMatcher
	maxFeatures int

	prevGray *entity.GrayBuffer
	points   []entity.Point
	box      entity.BoundingBox
	released bool
}

// NewBoxTracker создаёт трекер поверх сопоставителя точек.
func NewBoxTracker(matcher port.FeatureMatcher, maxFeatures int) *BoxTracker {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &BoxTracker{matcher: matcher, maxFeatures: maxFeatures}
}

// Init детектирует точки по всему кадру и оставляет только лежащие
// внутри бокса. Если внутри не осталось ни одной — ErrInsufficientFeatures.
func (t *BoxTracker) Init(frame *entity.ImageBuffer, box entity.BoundingBox) error {
	if t.released {
		return errors.New("tracker is released")
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	if err := box.Validate(); err != nil {
		return err
	}

	gray := frame.Grayscale()
	detected, err := t.matcher.Detect(gray, t.maxFeatures)
	if err != nil {
		return fmt.Errorf("detect features: %w", err)
	}

	inside := make([]entity.Point, 0, len(detected))
	for _, p := range detected {
		if box.Contains(p.X, p.Y) {
			inside = append(inside, p)
		}
	}
	if len(inside) == 0 {
		return entity.ErrInsufficientFeatures
	}

	t.prevGray = gray
	t.points = inside
	t.box = box.ClampTo(frame.Width, frame.Height)
	return nil
}

// Track сопоставляет точки с новым кадром и сдвигает бокс на медианное
// смещение. При нехватке валидных пар возвращает прежний бокс без
// изменений вместе с ErrTrackingLost — сессия продолжается. Новые точки
// и кадр становятся опорными для следующего вызова.
func (t *BoxTracker) Track(frame *entity.ImageBuffer) (entity.BoundingBox, error) {
	if t.released {
		return entity.BoundingBox{}, errors.New("tracker is released")
	}
	if t.prevGray == nil {
		return entity.BoundingBox{}, errors.New("tracker is not initialized")
	}
	if err := frame.Validate(); err != nil {
		return t.box, err
	}

	gray := frame.Grayscale()
	moved, valid, err := t.matcher.Match(t.prevGray, gray, t.points)
	if err != nil {
		return t.box, fmt.Errorf("match features: %w", err)
	}
	if len(moved) != len(t.points) || len(valid) != len(t.points) {
		return t.box, fmt.Errorf("matcher returned %d points and %d flags for %d inputs",
			len(moved), len(valid), len(t.points))
	}

	dxs := make([]float64, 0, len(moved))
	dys := make([]float64, 0, len(moved))
	kept := make([]entity.Point, 0, len(moved))
	for i, ok := range valid {
		if !ok {
			continue
		}
		dxs = append(dxs, float64(moved[i].X-t.points[i].X))
		dys = append(dys, float64(moved[i].Y-t.points[i].Y))
		kept = append(kept, moved[i])
	}

	t.prevGray = gray
	t.points = kept

	if len(kept) < minCorrespondences {
		return t.box, entity.ErrTrackingLost
	}

	t.box = t.box.Shift(median(dxs), median(dys)).ClampTo(gray.Width, gray.Height)
	return t.box, nil
}

// Box возвращает последний известный бокс.
func (t *BoxTracker) Box() entity.BoundingBox {
	return t.box
}

// Close освобождает состояние трекера. Track после Close запрещён.
func (t *BoxTracker) Close() {
	t.prevGray = nil
	t.points = nil
	t.released = true
}

func median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
