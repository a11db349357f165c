//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/renaqiu/stylematch/internal/bootstrap"
	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/scan"
	"github.com/renaqiu/stylematch/internal/infra/config"
	httpiface "github.com/renaqiu/stylematch/internal/interface/http"
	"github.com/renaqiu/stylematch/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideMatchingConfig,
		provideMatchingEngine,
		provideClosetConfig,
		provideScanConfig,
		provideClosetRepository,
		provideScanStore,
		provideImageStore,
		closet.NewService,
		scan.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
