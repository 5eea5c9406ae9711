package bootstrap

import (
	"go.uber.org/dig"

	"zerodb/internal/application/service"
	"zerodb/internal/domain"
	"zerodb/internal/platform/config"
	"zerodb/internal/platform/repository"
	"zerodb/internal/platform/repository/pagestore"
	"zerodb/internal/platform/server"
	"zerodb/internal/platform/server/handler/record"
)

func Run() (bool, error) {
	container := dig.New()
	serviceConstructors := []interface{}{
		config.LoadConfig,
		store,
		service.NewSaveUserService,
		service.NewGetUserService,
		service.NewDeleteUserService,
		service.NewFlushStoreService,
		record.NewHandler,
		server.NewServer,
	}
	for _, constructor := range serviceConstructors {
		if err := container.Provide(constructor); err != nil {
			return false, err
		}
	}
	err := container.Provide(repository.NewPageStoreRepository,
		dig.As(new(domain.RecordRepository)))
	if err != nil {
		return false, err
	}

	err = container.Invoke(func(s server.Server) error {
		return s.Run()
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func store(cfg config.Config) (*pagestore.BufferedRW, error) {
	return pagestore.OpenBufferedRW(cfg.DataFile)
}
