//go:build gocv
// +build gocv

package vision

import (
	"gocv.io/x/gocv"

	"maskflow/internal/domain/entity"
)

// LKMatcher — разреженный поток: детекция углов по Ши-Томаси и
// пирамидальное сопоставление Лукаса-Канаде.
type LKMatcher struct {
	QualityLevel float64 // относительный порог угловой силы
	MinDistance  float64 // минимальная дистанция между точками
}

// NewLKMatcher создаёт сопоставитель с типовыми порогами.
func NewLKMatcher() *LKMatcher {
	return &LKMatcher{
		QualityLevel: 0.01,
		MinDistance:  10,
	}
}

// Detect находит до maxFeatures локально различимых точек.
func (m *LKMatcher) Detect(gray *entity.GrayBuffer, maxFeatures int) ([]entity.Point, error) {
	mat, err := grayToMat(gray)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	corners := gocv.NewMat()
	defer corners.Close()
	gocv.GoodFeaturesToTrack(mat, &corners, maxFeatures, m.QualityLevel, m.MinDistance)

	points := make([]entity.Point, 0, corners.Rows())
	for i := 0; i < corners.Rows(); i++ {
		points = append(points, pointAt(corners, i))
	}
	return points, nil
}

// Match оценивает новые позиции точек между двумя кадрами.
func (m *LKMatcher) Match(prev, next *entity.GrayBuffer, points []entity.Point) ([]entity.Point, []bool, error) {
	if len(points) == 0 {
		return nil, nil, nil
	}

	prevMat, err := grayToMat(prev)
	if err != nil {
		return nil, nil, err
	}
	defer prevMat.Close()

	nextMat, err := grayToMat(next)
	if err != nil {
		return nil, nil, err
	}
	defer nextMat.Close()

	prevPts := gocv.NewMatWithSize(len(points), 2, gocv.MatTypeCV32F)
	defer prevPts.Close()
	for i, p := range points {
		prevPts.SetFloatAt(i, 0, p.X)
		prevPts.SetFloatAt(i, 1, p.Y)
	}

	nextPts := gocv.NewMat()
	defer nextPts.Close()
	status := gocv.NewMat()
	defer status.Close()
	errMat := gocv.NewMat()
	defer errMat.Close()

	gocv.CalcOpticalFlowPyrLK(prevMat, nextMat, prevPts, nextPts, &status, &errMat)

	moved := make([]entity.Point, len(points))
	valid := make([]bool, len(points))
	for i := range points {
		if i >= nextPts.Rows() {
			break
		}
		moved[i] = pointAt(nextPts, i)
		valid[i] = i < status.Rows() && status.GetUCharAt(i, 0) == 1
	}
	return moved, valid, nil
}

// pointAt читает точку из Mat формата Nx1 CV_32FC2 либо Nx2 CV_32F.
func pointAt(mat gocv.Mat, row int) entity.Point {
	if mat.Channels() == 2 {
		vec := mat.GetVecfAt(row, 0)
		return entity.Point{X: vec[0], Y: vec[1]}
	}
	return entity.Point{
		X: mat.GetFloatAt(row, 0),
		Y: mat.GetFloatAt(row, 1),
	}
}
