package app

import (
	"context"
	"errors"
	"fmt"

	"maskflow/internal/domain/entity"
	"maskflow/internal/domain/port"
)

// Strategy — закрытое множество вариантов распространения за единым
// контрактом. Вариант выбирается при создании сессии и не меняется.
type Strategy interface {
	Reference(ctx context.Context, frame, mask *entity.ImageBuffer, box *entity.BoundingBox) error
	Advance(ctx context.Context, next *entity.ImageBuffer) (*entity.ImageBuffer, error)
	Release() error
}

// BoxStrategy распространяет маску как жёсткий сдвиг прямоугольника:
// трекер ведёт бокс, на каждый кадр растеризуется свежая прямоугольная
// маска.
type BoxStrategy struct {
	tracker     *BoxTracker
	frameWidth  int
	frameHeight int
}

// NewBoxStrategy создаёт стратегию поверх сопоставителя точек.
func NewBoxStrategy(matcher port.FeatureMatcher, maxFeatures int) *BoxStrategy {
	return &BoxStrategy{tracker: NewBoxTracker(matcher, maxFeatures)}
}

// Reference инициализирует трекер. Бокс обязателен для этой стратегии.
func (s *BoxStrategy) Reference(ctx context.Context, frame, mask *entity.ImageBuffer, box *entity.BoundingBox) error {
	_ = ctx
	_ = mask
	if box == nil {
		return errors.New("bounding box strategy requires an initial box")
	}
	if err := s.tracker.Init(frame, *box); err != nil {
		return err
	}
	s.frameWidth = frame.Width
	s.frameHeight = frame.Height
	return nil
}

// Advance сдвигает бокс и растеризует из него маску. ErrTrackingLost
// не фатальна: маска строится из последнего известного бокса.
func (s *BoxStrategy) Advance(ctx context.Context, next *entity.ImageBuffer) (*entity.ImageBuffer, error) {
	_ = ctx
	box, trackErr := s.tracker.Track(next)
	if trackErr != nil && !errors.Is(trackErr, entity.ErrTrackingLost) {
		return nil, trackErr
	}

	mask, err := entity.RasterizeBox(box, s.frameWidth, s.frameHeight)
	if err != nil {
		return nil, err
	}
	return mask, trackErr
}

// Release закрывает трекер.
func (s *BoxStrategy) Release() error {
	s.tracker.Close()
	return nil
}

// DenseStrategy распространяет маску попиксельно: плотное поле от
// бэкенда потока плюс обратный варп. Держит ровно предыдущий кадр и
// предыдущую маску; состояние обновляется только при успешном шаге,
// так что после ошибки кадра сессией можно пользоваться дальше.
type DenseStrategy struct {
	provider  port.FlowProvider
	prevFrame *entity.ImageBuffer
	prevMask  *entity.ImageBuffer
}

// NewDenseStrategy создаёт стратегию поверх бэкенда плотного потока.
func NewDenseStrategy(provider port.FlowProvider) *DenseStrategy {
	return &DenseStrategy{provider: provider}
}

// Reference инициализирует бэкенд и запоминает опорную пару кадр+маска.
func (s *DenseStrategy) Reference(ctx context.Context, frame, mask *entity.ImageBuffer, box *entity.BoundingBox) error {
	_ = box
	if err := frame.Validate(); err != nil {
		return err
	}
	if err := mask.Validate(); err != nil {
		return err
	}
	if err := s.provider.Init(ctx); err != nil {
		return err
	}
	s.prevFrame = frame.Clone()
	s.prevMask = mask.Clone()
	return nil
}

// Advance оценивает поток к новому кадру и варпит предыдущую маску.
func (s *DenseStrategy) Advance(ctx context.Context, next *entity.ImageBuffer) (*entity.ImageBuffer, error) {
	if s.prevFrame == nil {
		return nil, errors.New("dense strategy is not referenced")
	}

	field, err := s.provider.Flow(ctx, s.prevFrame, next)
	if err != nil {
		return nil, err
	}

	mask, err := Warp(s.prevMask, field)
	if err != nil {
		return nil, err
	}

	s.prevFrame = next.Clone()
	s.prevMask = mask
	return mask.Clone(), nil
}

// Release отпускает состояние и закрывает бэкенд.
func (s *DenseStrategy) Release() error {
	s.prevFrame = nil
	s.prevMask = nil
	return s.provider.Close()
}

// PropagationSession — одна сессия распространения маски по кадрам.
// Фазы: idle → referenced → (Advance)* → released. Advance на одной
// сессии нельзя звать конкурентно: состояние стратегии меняется на
// месте. Независимые сессии не делят состояния.
type PropagationSession struct {
	strategy Strategy
	phase    entity.SessionPhase
	advanced int
	total    int
}

// NewPropagationSession создаёт сессию. totalFrames нужен только для
// доли прогресса; ноль означает «неизвестно».
func NewPropagationSession(strategy Strategy, totalFrames int) *PropagationSession {
	return &PropagationSession{
		strategy: strategy,
		phase:    entity.PhaseIdle,
		total:    totalFrames,
	}
}

// Phase возвращает текущую фазу сессии.
func (s *PropagationSession) Phase() entity.SessionPhase {
	return s.phase
}

// Reference — одноразовая привязка опорного кадра, маски и, для
// боксовой стратегии, начального бокса.
func (s *PropagationSession) Reference(ctx context.Context, frame, mask *entity.ImageBuffer, box *entity.BoundingBox) error {
	if s.phase != entity.PhaseIdle {
		return fmt.Errorf("reference is not allowed in phase %q", s.phase)
	}
	if err := s.strategy.Reference(ctx, frame, mask, box); err != nil {
		return err
	}
	s.phase = entity.PhaseReferenced
	return nil
}

// Advance делает один шаг: кадр i+1 → маска кадра i+1. Возвращённую
// маску вызывающая сторона передаёт внешнему затиранию.
func (s *PropagationSession) Advance(ctx context.Context, next *entity.ImageBuffer) (*entity.ImageBuffer, error) {
	if s.phase != entity.PhaseReferenced {
		return nil, fmt.Errorf("advance is not allowed in phase %q", s.phase)
	}

	mask, err := s.strategy.Advance(ctx, next)
	if err == nil || errors.Is(err, entity.ErrTrackingLost) {
		s.advanced++
	}
	return mask, err
}

// Progress — монотонно растущая доля пройденных кадров. Только для
// отображения, на управление внутри движка не влияет.
func (s *PropagationSession) Progress() float64 {
	if s.total <= 0 {
		return 0
	}
	f := float64(s.advanced) / float64(s.total)
	if f > 1 {
		return 1
	}
	return f
}

// Release освобождает ресурсы стратегии. Повторный вызов безопасен.
func (s *PropagationSession) Release() error {
	if s.phase == entity.PhaseReleased {
		return nil
	}
	s.phase = entity.PhaseReleased
	return s.strategy.Release()
}
