package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"maskflow/internal/domain/entity"
	"maskflow/internal/domain/port"
	"maskflow/internal/infrastructure/metrics"
)

// RemovalPolicy — решения вызывающей стороны о продолжении после
// невырожденных сбоев; движок сам ничего не ретраит.
type RemovalPolicy struct {
	// FailOnTrackingLost прерывает прогон вместо продолжения со старым
	// боксом.
	FailOnTrackingLost bool

	// AbortOnInferenceFailure прерывает прогон вместо повторного
	// использования предыдущей маски.
	AbortOnInferenceFailure bool
}

// RemovalService — оркестрирующий конвейер удаления объекта: источник
// кадров → шаг сессии → внешнее затирание → приёмник кадров.
type RemovalService struct {
	source    port.FrameSource
	sink      port.FrameSink
	inpainter port.Inpainter
	session   *PropagationSession
	policy    RemovalPolicy
	strategy  string
	logger    *zap.Logger
}

// NewRemovalService собирает конвейер.
func NewRemovalService(
	source port.FrameSource,
	sink port.FrameSink,
	inpainter port.Inpainter,
	session *PropagationSession,
	policy RemovalPolicy,
	strategyName string,
	logger *zap.Logger,
) *RemovalService {
	return &RemovalService{
		source:    source,
		sink:      sink,
		inpainter: inpainter,
		session:   session,
		policy:    policy,
		strategy:  strategyName,
		logger:    logger,
	}
}

// Run прогоняет всю последовательность кадров. firstMask — маска,
// нарисованная пользователем на первом кадре; box обязателен для
// боксовой стратегии.
func (s *RemovalService) Run(ctx context.Context, firstMask *entity.ImageBuffer, box *entity.BoundingBox) error {
	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()
	defer func() {
		if err := s.session.Release(); err != nil {
			s.logger.Warn("session release failed", zap.Error(err))
		}
	}()

	first, err := s.source.Next(ctx)
	if err != nil {
		return fmt.Errorf("read first frame: %w", err)
	}

	if err := s.session.Reference(ctx, first, firstMask, box); err != nil {
		return fmt.Errorf("reference session: %w", err)
	}

	if err := s.emit(ctx, first, firstMask); err != nil {
		return fmt.Errorf("frame 0: %w", err)
	}

	prevMask := firstMask
	for i := 1; ; i++ {
		frame, err := s.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", i, err)
		}

		start := time.Now()
		mask, err := s.session.Advance(ctx, frame)
		metrics.StageDuration.WithLabelValues("advance").Observe(time.Since(start).Seconds())

		switch {
		case err == nil:
		case errors.Is(err, entity.ErrTrackingLost):
			metrics.TrackingLostTotal.Inc()
			if s.policy.FailOnTrackingLost {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			s.logger.Warn("tracking lost, continuing with last known box", zap.Int("frame", i))
		case errors.Is(err, entity.ErrInferenceFailed):
			metrics.InferenceFailuresTotal.Inc()
			if s.policy.AbortOnInferenceFailure {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			s.logger.Warn("inference failed, reusing previous mask", zap.Int("frame", i), zap.Error(err))
			mask = prevMask
		default:
			return fmt.Errorf("advance frame %d: %w", i, err)
		}

		if err := s.emit(ctx, frame, mask); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		prevMask = mask

		metrics.FramesPropagatedTotal.WithLabelValues(s.strategy).Inc()
		s.logger.Debug("frame propagated",
			zap.Int("frame", i),
			zap.Float64("progress", s.session.Progress()),
		)
	}

	if err := s.sink.Close(); err != nil {
		return fmt.Errorf("close sink: %w", err)
	}
	return nil
}

func (s *RemovalService) emit(ctx context.Context, frame, mask *entity.ImageBuffer) error {
	start := time.Now()
	clean, err := s.inpainter.Inpaint(ctx, frame, mask)
	if err != nil {
		return fmt.Errorf("inpaint: %w", err)
	}
	metrics.StageDuration.WithLabelValues("inpaint").Observe(time.Since(start).Seconds())

	start = time.Now()
	if err := s.sink.Write(ctx, clean); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	metrics.StageDuration.WithLabelValues("encode").Observe(time.Since(start).Seconds())
	return nil
}
