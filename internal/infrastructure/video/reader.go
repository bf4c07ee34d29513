package video

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"maskflow/internal/domain/entity"
)

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	NbFrames  string `json:"nb_frames"`
}

// Reader декодирует видеофайл в последовательность RGBA-кадров через
// ffmpeg-пайп. Кадры отдаются строго по порядку, по одному за вызов.
type Reader struct {
	width  int
	height int
	frames int

	pipe *io.PipeReader
	buf  *bufio.Reader
}

// NewReader пробует файл через ffprobe и запускает декодирование в rawvideo.
func NewReader(ctx context.Context, path string) (*Reader, error) {
	probeStr, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}

	var probe probeResult
	if err := json.Unmarshal([]byte(probeStr), &probe); err != nil {
		return nil, fmt.Errorf("parse probe data: %w", err)
	}

	var video *probeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			video = &probe.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, fmt.Errorf("%q has no video stream", path)
	}
	if video.Width <= 0 || video.Height <= 0 {
		return nil, fmt.Errorf("%q reports invalid frame size %dx%d", path, video.Width, video.Height)
	}

	frames, _ := strconv.Atoi(video.NbFrames)

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input(path).
		Output("pipe:1", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgba",
		}).
		WithOutput(pw).
		WithErrorOutput(io.Discard)
	cmd.Context = ctx

	go func() {
		pw.CloseWithError(cmd.Run())
	}()

	return &Reader{
		width:  video.Width,
		height: video.Height,
		frames: frames,
		pipe:   pr,
		buf:    bufio.NewReaderSize(pr, video.Width*4),
	}, nil
}

// Next возвращает следующий кадр либо io.EOF после последнего.
func (r *Reader) Next(ctx context.Context) (*entity.ImageBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame, err := entity.NewImageBuffer(r.width, r.height)
	if err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(r.buf, frame.Pixels); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return frame, nil
}

// Size возвращает размер кадра.
func (r *Reader) Size() (width, height int) {
	return r.width, r.height
}

// FrameCount возвращает число кадров по метаданным либо 0, если
// контейнер его не сообщает.
func (r *Reader) FrameCount() int {
	return r.frames
}

// Close обрывает пайп и останавливает декодер.
func (r *Reader) Close() error {
	return r.pipe.Close()
}
