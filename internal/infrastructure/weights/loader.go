package weights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Loader достаёт веса модели: сначала локальный кэш, потом удалённый
// репозиторий. Скачанные веса кладутся в кэш на следующие запуски.
type Loader struct {
	dir     string
	baseURL string
	client  *http.Client
}

// NewLoader создаёт загрузчик. Пустой baseURL отключает скачивание:
// доступны только веса из кэша.
func NewLoader(dir, baseURL string) *Loader {
	return &Loader{
		dir:     dir,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch возвращает ONNX-блоб для модели modelID.
func (l *Loader) Fetch(ctx context.Context, modelID string) ([]byte, error) {
	cached := filepath.Join(l.dir, modelID+".onnx")
	data, err := os.ReadFile(cached)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read cached weights: %w", err)
	}

	if l.baseURL == "" {
		return nil, fmt.Errorf("weights for %q are not cached and no download url is configured", modelID)
	}

	data, err = l.download(ctx, modelID)
	if err != nil {
		return nil, err
	}

	// Ошибка записи кэша не мешает работе: веса уже в памяти.
	if err := os.MkdirAll(l.dir, 0o755); err == nil {
		_ = os.WriteFile(cached, data, 0o644)
	}
	return data, nil
}

func (l *Loader) download(ctx context.Context, modelID string) ([]byte, error) {
	u, err := url.JoinPath(l.baseURL, modelID+".onnx")
	if err != nil {
		return nil, fmt.Errorf("build weights url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download weights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download weights: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download weights: %w", err)
	}
	return data, nil
}
