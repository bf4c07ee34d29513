//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"maskflow/internal/domain/entity"
	"maskflow/internal/domain/port"
)

// Заглушки для сборки без OpenCV: сигнатуры те же, каждая операция
// возвращает ошибку.
var errGocvDisabled = errors.New("gocv build tag is not enabled")

type Farneback struct{}

func NewFarneback() *Farneback { return &Farneback{} }

func (f *Farneback) Init(ctx context.Context) error { return errGocvDisabled }

func (f *Farneback) Flow(ctx context.Context, prev, next *entity.ImageBuffer) (*entity.FlowField, error) {
	return nil, errGocvDisabled
}

func (f *Farneback) Close() error { return nil }

type LKMatcher struct {
	QualityLevel float64
	MinDistance  float64
}

func NewLKMatcher() *LKMatcher { return &LKMatcher{} }

func (m *LKMatcher) Detect(gray *entity.GrayBuffer, maxFeatures int) ([]entity.Point, error) {
	return nil, errGocvDisabled
}

func (m *LKMatcher) Match(prev, next *entity.GrayBuffer, points []entity.Point) ([]entity.Point, []bool, error) {
	return nil, nil, errGocvDisabled
}

type FlowNet struct{}

func NewFlowNet(store port.WeightStore, modelID string, width, height int) *FlowNet {
	return &FlowNet{}
}

func (f *FlowNet) Load(ctx context.Context) error { return errGocvDisabled }

func (f *FlowNet) InputSize() (int, int) { return 0, 0 }

func (f *FlowNet) Run(ctx context.Context, prev, next []float32) ([]float32, error) {
	return nil, errGocvDisabled
}

func (f *FlowNet) Close() error { return nil }

type Inpainter struct {
	Radius float32
}

func NewInpainter() *Inpainter { return &Inpainter{} }

func (p *Inpainter) Inpaint(ctx context.Context, frame, mask *entity.ImageBuffer) (*entity.ImageBuffer, error) {
	return nil, errGocvDisabled
}
