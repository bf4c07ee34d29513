package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	app "maskflow/internal/application"
	"maskflow/internal/domain/entity"
)

type noopStrategy struct {
	released bool
}

func (s *noopStrategy) Reference(ctx context.Context, frame, mask *entity.ImageBuffer, box *entity.BoundingBox) error {
	return nil
}

func (s *noopStrategy) Advance(ctx context.Context, next *entity.ImageBuffer) (*entity.ImageBuffer, error) {
	return nil, nil
}

func (s *noopStrategy) Release() error {
	s.released = true
	return nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	session := app.NewPropagationSession(&noopStrategy{}, 0)

	require.NoError(t, reg.Register("s1", session))
	require.Equal(t, 1, reg.Len())

	got, exists := reg.Get("s1")
	require.True(t, exists)
	require.Same(t, session, got)

	_, exists = reg.Get("s2")
	require.False(t, exists)
}

func TestRegistry_DuplicateID(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register("s1", app.NewPropagationSession(&noopStrategy{}, 0)))
	require.Error(t, reg.Register("s1", app.NewPropagationSession(&noopStrategy{}, 0)))
}

func TestRegistry_ReleaseFreesSession(t *testing.T) {
	reg := NewRegistry()
	strategy := &noopStrategy{}
	require.NoError(t, reg.Register("s1", app.NewPropagationSession(strategy, 0)))

	require.NoError(t, reg.Release("s1"))
	require.Equal(t, 0, reg.Len())
	require.True(t, strategy.released)

	require.Error(t, reg.Release("s1"))
}
