package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"maskflow/config"
	app "maskflow/internal/application"
	"maskflow/internal/container"
	"maskflow/internal/domain/entity"
	"maskflow/internal/infrastructure/metrics"
	"maskflow/internal/infrastructure/video"
	"maskflow/internal/infrastructure/vision"
	"maskflow/pkg/logger"
)

func main() {
	inPath := flag.String("in", "", "input video file")
	outPath := flag.String("out", "out.mp4", "output video file")
	maskPath := flag.String("mask", "", "png mask for the first frame")
	boxSpec := flag.String("box", "", "initial bounding box as x,y,w,h")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *inPath == "" {
		log.Fatal("-in is required")
	}
	if *maskPath == "" && *boxSpec == "" {
		log.Fatal("either -mask or -box is required")
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSrv := metrics.StartMetricsServer(ctx, cfg.MetricsPort, zl)
	defer metricsSrv.Close()

	reader, err := video.NewReader(ctx, *inPath)
	if err != nil {
		zl.Fatal("open input video", zap.Error(err))
	}
	defer reader.Close()

	width, height := reader.Size()

	writer, err := video.NewWriter(ctx, *outPath, width, height, cfg.FPS)
	if err != nil {
		zl.Fatal("open output video", zap.Error(err))
	}
	defer writer.Close()

	box, err := parseBox(*boxSpec)
	if err != nil {
		zl.Fatal("parse bounding box", zap.Error(err))
	}

	mask, err := loadMask(*maskPath, box, width, height)
	if err != nil {
		zl.Fatal("build first-frame mask", zap.Error(err))
	}

	c := container.New(cfg, zl)
	session, err := c.NewSession("cli", reader.FrameCount())
	if err != nil {
		zl.Fatal("create session", zap.Error(err))
	}

	policy := app.RemovalPolicy{
		FailOnTrackingLost:      cfg.OnTrackingLost == "fail",
		AbortOnInferenceFailure: cfg.OnInferenceFailed == "abort",
	}
	svc := app.NewRemovalService(reader, writer, vision.NewInpainter(), session, policy, cfg.Strategy, zl)

	zl.Info("removal started",
		zap.String("input", *inPath),
		zap.String("strategy", cfg.Strategy),
		zap.Int("frames", reader.FrameCount()),
	)

	if err := svc.Run(ctx, mask, box); err != nil {
		zl.Fatal("removal failed", zap.Error(err))
	}

	zl.Info("removal finished", zap.String("output", *outPath))
}

// parseBox разбирает строку вида "x,y,w,h". Пустая строка — nil.
func parseBox(spec string) (*entity.BoundingBox, error) {
	if spec == "" {
		return nil, nil
	}

	var box entity.BoundingBox
	if _, err := fmt.Sscanf(spec, "%d,%d,%d,%d", &box.X, &box.Y, &box.Width, &box.Height); err != nil {
		return nil, fmt.Errorf("expected x,y,w,h: %w", err)
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	return &box, nil
}

// loadMask читает PNG-маску либо растеризует её из бокса.
func loadMask(path string, box *entity.BoundingBox, width, height int) (*entity.ImageBuffer, error) {
	if path == "" {
		return entity.RasterizeBox(*box, width, height)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode mask png: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return nil, fmt.Errorf("mask size %dx%d does not match video %dx%d",
			bounds.Dx(), bounds.Dy(), width, height)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	}

	mask := &entity.ImageBuffer{Width: width, Height: height, Pixels: rgba.Pix}
	if err := mask.Validate(); err != nil {
		return nil, err
	}
	return mask, nil
}
