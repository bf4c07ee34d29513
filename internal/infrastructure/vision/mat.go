//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"maskflow/internal/domain/entity"
)

// grayToMat кладёт серый буфер в одноканальный Mat.
func grayToMat(g *entity.GrayBuffer) (gocv.Mat, error) {
	if err := g.Validate(); err != nil {
		return gocv.NewMat(), err
	}
	return gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8U, g.Values)
}

// frameToBGR переводит RGBA-кадр в трёхканальный BGR Mat.
func frameToBGR(frame *entity.ImageBuffer) (gocv.Mat, error) {
	if err := frame.Validate(); err != nil {
		return gocv.NewMat(), err
	}

	rgba := &image.RGBA{
		Pix:    frame.Pixels,
		Stride: frame.Width * 4,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}
	matRGBA, err := gocv.ImageToMatRGBA(rgba)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer matRGBA.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(matRGBA, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// matToFrame возвращает Mat обратно в RGBA-буфер.
func matToFrame(mat gocv.Mat) (*entity.ImageBuffer, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		bounds := img.Bounds()
		rgba = image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}

	buf := &entity.ImageBuffer{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("mat conversion produced invalid buffer: %w", err)
	}
	return buf, nil
}
