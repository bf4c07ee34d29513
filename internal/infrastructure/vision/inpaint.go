//go:build gocv
// +build gocv

package vision

import (
	"context"

	"gocv.io/x/gocv"

	"maskflow/internal/domain/entity"
)

// Inpainter дорисовывает область маски методом Телеа.
type Inpainter struct {
	Radius float32 // радиус окрестности вокруг восстанавливаемого пикселя
}

// NewInpainter создаёт инпейнтер с типовым радиусом.
func NewInpainter() *Inpainter {
	return &Inpainter{Radius: 3}
}

// Inpaint заполняет пиксели кадра там, где маска непустая.
func (p *Inpainter) Inpaint(ctx context.Context, frame, mask *entity.ImageBuffer) (*entity.ImageBuffer, error) {
	_ = ctx

	bgr, err := frameToBGR(frame)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	maskMat, err := grayToMat(mask.Grayscale())
	if err != nil {
		return nil, err
	}
	defer maskMat.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Inpaint(bgr, maskMat, &dst, p.Radius, gocv.Telea)

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(dst, &rgba, gocv.ColorBGRToRGBA)

	return matToFrame(rgba)
}
