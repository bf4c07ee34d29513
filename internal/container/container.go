package container

import (
	"fmt"

	"go.uber.org/zap"

	"maskflow/config"
	app "maskflow/internal/application"
	"maskflow/internal/infrastructure/storage"
	"maskflow/internal/infrastructure/vision"
	"maskflow/internal/infrastructure/weights"
)

type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *storage.Registry
}

func New(cfg *config.Config, log *zap.Logger) *Container {
	return &Container{
		Config:   cfg,
		Logger:   log,
		Sessions: storage.NewRegistry(),
	}
}

// NewSession собирает сессию под сконфигурированную стратегию и
// регистрирует её в реестре.
func (c *Container) NewSession(id string, totalFrames int) (*app.PropagationSession, error) {
	strategy, err := c.newStrategy()
	if err != nil {
		return nil, err
	}

	session := app.NewPropagationSession(strategy, totalFrames)
	if err := c.Sessions.Register(id, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *Container) newStrategy() (app.Strategy, error) {
	switch c.Config.Strategy {
	case "bbox":
		return app.NewBoxStrategy(vision.NewLKMatcher(), c.Config.MaxFeatures), nil
	case "dense":
		return app.NewDenseStrategy(vision.NewFarneback()), nil
	case "neural":
		store := weights.NewLoader(c.Config.WeightsDir, c.Config.WeightsBaseURL)
		net := vision.NewFlowNet(store, c.Config.ModelID, c.Config.NetInputWidth, c.Config.NetInputHeight)
		return app.NewDenseStrategy(app.NewNeuralFlow(net)), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", c.Config.Strategy)
	}
}
