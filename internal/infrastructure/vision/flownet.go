//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"maskflow/internal/domain/port"
)

// Имена входов из экспорта модели оценщика потока.
const (
	flowNetFirstInput  = "first"
	flowNetSecondInput = "second"
)

// FlowNet исполняет нейронный оценщик потока через DNN-модуль OpenCV.
// Веса приходят непрозрачным ONNX-блобом из WeightStore.
type FlowNet struct {
	store   port.WeightStore
	modelID string
	width   int
	height  int

	net    gocv.Net
	loaded bool
}

// NewFlowNet создаёт оценщик с фиксированным рабочим разрешением.
func NewFlowNet(store port.WeightStore, modelID string, width, height int) *FlowNet {
	return &FlowNet{store: store, modelID: modelID, width: width, height: height}
}

// Load получает веса и строит сеть. Повторный вызов — no-op: контекст
// исполнения держится тёплым между сессиями.
func (f *FlowNet) Load(ctx context.Context) error {
	if f.loaded {
		return nil
	}

	data, err := f.store.Fetch(ctx, f.modelID)
	if err != nil {
		return fmt.Errorf("fetch weights for %q: %w", f.modelID, err)
	}

	net, err := gocv.ReadNetFromONNXBytes(data)
	if err != nil {
		return fmt.Errorf("read onnx model %q: %w", f.modelID, err)
	}
	if net.Empty() {
		return fmt.Errorf("onnx model %q produced an empty network", f.modelID)
	}

	f.net = net
	f.loaded = true
	return nil
}

// InputSize возвращает рабочее разрешение модели.
func (f *FlowNet) InputSize() (int, int) {
	return f.width, f.height
}

// Run прогоняет пару CHW-тензоров через сеть и возвращает поле [2*H*W].
func (f *FlowNet) Run(ctx context.Context, prev, next []float32) ([]float32, error) {
	_ = ctx
	if !f.loaded {
		return nil, errors.New("flow net is not loaded")
	}

	plane := f.width * f.height
	if len(prev) != 3*plane || len(next) != 3*plane {
		return nil, fmt.Errorf("input tensors have %d and %d values, want %d", len(prev), len(next), 3*plane)
	}

	blobPrev, err := tensorToBlob(prev, f.width, f.height)
	if err != nil {
		return nil, err
	}
	defer blobPrev.Close()

	blobNext, err := tensorToBlob(next, f.width, f.height)
	if err != nil {
		return nil, err
	}
	defer blobNext.Close()

	f.net.SetInput(blobPrev, flowNetFirstInput)
	f.net.SetInput(blobNext, flowNetSecondInput)

	out := f.net.Forward("")
	defer out.Close()
	if out.Empty() {
		return nil, errors.New("network returned an empty output")
	}

	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read network output: %w", err)
	}
	if len(data) < 2*plane {
		return nil, fmt.Errorf("network output has %d values, want %d", len(data), 2*plane)
	}

	flow := make([]float32, 2*plane)
	copy(flow, data[:2*plane])
	return flow, nil
}

// Close оставляет сеть загруженной: повторная инициализация бэкенда на
// каждую сессию слишком дорогая.
func (f *FlowNet) Close() error {
	return nil
}

func tensorToBlob(tensor []float32, width, height int) (gocv.Mat, error) {
	blob := gocv.NewMatWithSizes([]int{1, 3, height, width}, gocv.MatTypeCV32F)
	ptr, err := blob.DataPtrFloat32()
	if err != nil {
		blob.Close()
		return gocv.NewMat(), fmt.Errorf("map blob memory: %w", err)
	}
	copy(ptr, tensor)
	return blob, nil
}
