package video

import (
	"context"
	"fmt"
	"io"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"maskflow/internal/domain/entity"
)

// Writer кодирует RGBA-кадры в H.264-файл через ffmpeg-пайп.
// Все кадры должны совпадать по размеру с объявленным при создании.
type Writer struct {
	width  int
	height int

	pipe *io.PipeWriter
	done chan error
	once sync.Once
	err  error
}

// NewWriter запускает кодирование в path с заданной частотой кадров.
func NewWriter(ctx context.Context, path string, width, height, fps int) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid output frame size %dx%d", width, height)
	}
	if fps <= 0 {
		fps = 25
	}

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}).
		Output(path, ffmpeg.KwArgs{
			"pix_fmt": "yuv420p",
			"vcodec":  "libx264",
		}).
		OverWriteOutput().
		WithInput(pr).
		WithErrorOutput(io.Discard)
	cmd.Context = ctx

	done := make(chan error, 1)
	go func() {
		done <- cmd.Run()
	}()

	return &Writer{
		width:  width,
		height: height,
		pipe:   pw,
		done:   done,
	}, nil
}

// Write отправляет кадр кодеку.
func (w *Writer) Write(ctx context.Context, frame *entity.ImageBuffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	if frame.Width != w.width || frame.Height != w.height {
		return fmt.Errorf("frame size %dx%d does not match output %dx%d",
			frame.Width, frame.Height, w.width, w.height)
	}

	if _, err := w.pipe.Write(frame.Pixels); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close закрывает пайп и дожидается завершения кодека. Идемпотентен.
func (w *Writer) Close() error {
	w.once.Do(func() {
		w.pipe.Close()
		w.err = <-w.done
	})
	return w.err
}
