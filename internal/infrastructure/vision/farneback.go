//go:build gocv
// +build gocv

package vision

import (
	"context"

	"gocv.io/x/gocv"

	"maskflow/internal/domain/entity"
)

// Параметры Фарнебека: пирамида 3 уровня с шагом 0.5, окно усреднения 15,
// 3 итерации на уровень, окрестность полиномиального разложения 5,
// гауссово сглаживание 1.2.
const (
	farnebackPyrScale   = 0.5
	farnebackLevels     = 3
	farnebackWinSize    = 15
	farnebackIterations = 3
	farnebackPolyN      = 5
	farnebackPolySigma  = 1.2
)

// Farneback — классический плотный поток: многомасштабная итеративная
// градиентная оценка без весов модели. Чистая CPU-процедура, безопасно
// звать повторно без инициализации.
type Farneback struct{}

// NewFarneback создаёт бэкенд классического плотного потока.
func NewFarneback() *Farneback {
	return &Farneback{}
}

// Init не делает ничего: бэкенду не нужна подготовка.
func (f *Farneback) Init(ctx context.Context) error {
	_ = ctx
	return nil
}

// Flow считает поле смещений того же размера, что и входные кадры.
// Детерминирован для одинаковых входов.
func (f *Farneback) Flow(ctx context.Context, prev, next *entity.ImageBuffer) (*entity.FlowField, error) {
	_ = ctx

	prevMat, err := grayToMat(prev.Grayscale())
	if err != nil {
		return nil, err
	}
	defer prevMat.Close()

	nextMat, err := grayToMat(next.Grayscale())
	if err != nil {
		return nil, err
	}
	defer nextMat.Close()

	flow := gocv.NewMat()
	defer flow.Close()
	gocv.CalcOpticalFlowFarneback(prevMat, nextMat, &flow,
		farnebackPyrScale, farnebackLevels, farnebackWinSize,
		farnebackIterations, farnebackPolyN, farnebackPolySigma, 0)

	field, err := entity.NewFlowField(flow.Cols(), flow.Rows())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := 0; y < flow.Rows(); y++ {
		for x := 0; x < flow.Cols(); x++ {
			vec := flow.GetVecfAt(y, x)
			field.DX[i] = vec[0]
			field.DY[i] = vec[1]
			i++
		}
	}
	return field, nil
}

// Close не делает ничего: состояния нет.
func (f *Farneback) Close() error {
	return nil
}
