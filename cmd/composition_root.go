package cmd

import (
	"fmt"
	"log/slog"

	"optiroute/internal/adapters/out/csvfile"
	"optiroute/internal/adapters/out/nominatim"
	"optiroute/internal/adapters/out/postgres"
	"optiroute/internal/adapters/out/ratelimit"
	"optiroute/internal/adapters/out/tomtom"
	"optiroute/internal/core/application/stages"
	"optiroute/internal/core/application/usecases/commands"
	"optiroute/internal/core/application/usecases/queries"
	"optiroute/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	// One pacer for the whole process so the geocoding rate holds across jobs.
	pacer *ratelimit.Pacer
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	pacer, err := ratelimit.NewPacer(config.GeocodeInterval)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("geocoding pacer: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		pacer:      pacer,
	}, nil
}

func (c *CompositionRoot) jobUoWFactory() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateProcessJobCommandHandler() (commands.ProcessJobCommandHandler, error) {
	geocoder, err := nominatim.NewGeocoder(c.config.NominatimURL, c.config.NominatimUserAgent, c.logger)
	if err != nil {
		return commands.ProcessJobCommandHandler{}, err
	}

	optimizer, err := tomtom.NewOptimizer(c.config.TomTomBaseURL, c.config.TomTomAPIKey, c.logger)
	if err != nil {
		return commands.ProcessJobCommandHandler{}, err
	}

	return commands.NewProcessJobCommandHandler(
		c.jobUoWFactory(),
		csvfile.NewAddressReader(),
		stages.NewGeocodingStage(geocoder, c.pacer, c.logger),
		stages.NewRouteOptimizationStage(optimizer, c.logger),
		c.logger,
	), nil
}

func (c *CompositionRoot) CreateCreateJobCommandHandler(publisher ports.JobPublisher) commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.jobUoWFactory(), publisher)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListJobsQueryHandler() queries.ListJobsQueryHandler {
	return queries.NewListJobsQueryHandler(c.gormDB)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
