//go:build wireinject
// +build wireinject

package di

import (
	"context"

	commandbus "eventlens-backend/application/commands/bus"
	"eventlens-backend/application/ports"
	querybus "eventlens-backend/application/queries/bus"
	"eventlens-backend/application/services/maprenderer"
	"eventlens-backend/infrastructure/config"
	"eventlens-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	LogLevel    zap.AtomicLevel
	EventStore  ports.EventStore
	EventWriter ports.EventWriter
	Extractor   ports.ParameterExtractor
	Summarizer  ports.EventSummarizer
	Geocoder    ports.Geocoder
	MapRenderer *maprenderer.Renderer
	CommandBus  *commandbus.CommandBus
	QueryBus    *querybus.QueryBus
	Metrics     *observability.Metrics
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideMetrics,
	ProvideDynamoEventStore,
	ProvideEventStore,
	ProvideEventWriter,
	ProvideLLMClient,
	ProvideExtractor,
	ProvideSummarizer,
	ProvideGeocoder,
	ProvideMapRenderer,
	ProvideNormalizer,
	ProvideStatsAggregator,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
