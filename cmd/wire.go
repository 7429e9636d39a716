package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	statusadapter "github.com/bnema/helm-threads-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/helm-threads-cli/internal/adapters/repo/toml"
	"github.com/bnema/helm-threads-cli/internal/application"
	"github.com/bnema/helm-threads-cli/internal/logging"
	"github.com/bnema/helm-threads-cli/internal/ports"
)

type app struct {
	threads        *application.ThreadService
	sessions       *application.SessionMemory
	statusRenderer func([]application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire thread repository: %w", err)
	}

	clock := ports.SystemClock{}
	logging.Logger.Debug("wired thread repository and session memory")

	return &app{
		threads:        application.NewThreadService(repo, clock),
		sessions:       application.NewSessionMemory(clock),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}
