package app

import (
	"context"
	"fmt"
	"math"

	"maskflow/internal/domain/entity"
	"maskflow/internal/domain/port"
)

// NeuralFlow адаптирует нейронный оценщик к контракту FlowProvider:
// приводит пару кадров к фиксированному разрешению модели, пакует
// CHW-тензоры, валидирует их на конечность перед каждым инференсом и
// распаковывает двухканальный выход в поле смещений. Поле остаётся в
// пикселях рабочего разрешения — обратное приведение делает варп.
type NeuralFlow struct {
	net port.FlowInference
}

// NewNeuralFlow создаёт обёртку над оценщиком.
func NewNeuralFlow(net port.FlowInference) *NeuralFlow {
	return &NeuralFlow{net: net}
}

// Init загружает модель. Отказ — ErrBackendUnavailable: без модели
// плотное нейронное сопровождение невозможно в принципе.
func (n *NeuralFlow) Init(ctx context.Context) error {
	if err := n.net.Load(ctx); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrBackendUnavailable, err)
	}
	return nil
}

// Flow оценивает поле смещений между двумя кадрами.
func (n *NeuralFlow) Flow(ctx context.Context, prev, next *entity.ImageBuffer) (*entity.FlowField, error) {
	width, height := n.net.InputSize()

	a, err := PackTensor(prev, width, height)
	if err != nil {
		return nil, err
	}
	b, err := PackTensor(next, width, height)
	if err != nil {
		return nil, err
	}
	if err := validateFinite("previous frame", a); err != nil {
		return nil, err
	}
	if err := validateFinite("next frame", b); err != nil {
		return nil, err
	}

	out, err := n.net.Run(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInferenceFailed, err)
	}

	plane := width * height
	if len(out) != 2*plane {
		return nil, fmt.Errorf("%w: got %d values, want %d", entity.ErrInferenceFailed, len(out), 2*plane)
	}
	if err := validateFinite("flow output", out); err != nil {
		return nil, err
	}

	field := &entity.FlowField{
		Width:  width,
		Height: height,
		DX:     out[:plane:plane],
		DY:     out[plane:],
	}
	return field, nil
}

// Close освобождает обёртку. Контекст исполнения модели остаётся тёплым.
func (n *NeuralFlow) Close() error {
	return n.net.Close()
}

// PackTensor приводит кадр к width×height и пакует его в CHW-тензор
// [3*H*W] (батч из одного элемента) со значениями каналов в [0,1].
func PackTensor(frame *entity.ImageBuffer, width, height int) ([]float32, error) {
	resized, err := ResizeImage(frame, width, height)
	if err != nil {
		return nil, err
	}

	plane := width * height
	t := make([]float32, 3*plane)
	for i := 0; i < plane; i++ {
		p := i * 4
		t[i] = float32(resized.Pixels[p]) / 255
		t[plane+i] = float32(resized.Pixels[p+1]) / 255
		t[2*plane+i] = float32(resized.Pixels[p+2]) / 255
	}
	return t, nil
}

func validateFinite(name string, values []float32) error {
	for i, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite value in %s tensor at index %d", entity.ErrInferenceFailed, name, i)
		}
	}
	return nil
}
