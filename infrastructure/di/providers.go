package di

import (
	"context"
	"fmt"

	"eventlens-backend/application/commands"
	commandbus "eventlens-backend/application/commands/bus"
	commands_handlers "eventlens-backend/application/commands/handlers"
	"eventlens-backend/application/ports"
	"eventlens-backend/application/queries"
	querybus "eventlens-backend/application/queries/bus"
	queries_handlers "eventlens-backend/application/queries/handlers"
	"eventlens-backend/application/services/maprenderer"
	"eventlens-backend/domain/services"
	"eventlens-backend/infrastructure/config"
	"eventlens-backend/infrastructure/geocode"
	"eventlens-backend/infrastructure/llm"
	"eventlens-backend/infrastructure/persistence/dynamodb"
	"eventlens-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogLevel creates the shared atomic log level. Holding it in the
// container lets the config watcher adjust verbosity at runtime.
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level := zapcore.InfoLevel
	if !cfg.IsProduction() {
		level = zapcore.DebugLevel
	}
	if cfg.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(cfg *config.Config) *observability.Metrics {
	return observability.NewMetrics("eventlens")
}

// ProvideDynamoEventStore creates the graph event store
func ProvideDynamoEventStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamodb.EventStore {
	return dynamodb.NewEventStore(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideEventStore exposes the store's read interface
func ProvideEventStore(store *dynamodb.EventStore) ports.EventStore {
	return store
}

// ProvideEventWriter exposes the store's write interface
func ProvideEventWriter(store *dynamodb.EventStore) ports.EventWriter {
	return store
}

// ProvideLLMClient creates the chat-completion client
func ProvideLLMClient(cfg *config.Config, logger *zap.Logger) *llm.Client {
	return llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, logger)
}

// ProvideExtractor creates the query parameter extractor
func ProvideExtractor(client *llm.Client, metrics *observability.Metrics, logger *zap.Logger) ports.ParameterExtractor {
	return llm.NewExtractor(client, metrics, logger)
}

// ProvideSummarizer creates the event summarizer
func ProvideSummarizer(client *llm.Client, logger *zap.Logger) ports.EventSummarizer {
	return llm.NewSummarizer(client, logger)
}

// ProvideGeocoder creates the caching Nominatim geocoder
func ProvideGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) ports.Geocoder {
	client := geocode.NewNominatimClient(geocode.Config{
		BaseURL:   cfg.GeocodeBaseURL,
		UserAgent: cfg.GeocodeUserAgent,
	}, logger)
	return geocode.NewCachingGeocoder(client, cfg.GeocodeCacheCapacity, metrics)
}

// ProvideMapRenderer creates the Leaflet map renderer
func ProvideMapRenderer(geocoder ports.Geocoder, logger *zap.Logger) *maprenderer.Renderer {
	return maprenderer.NewRenderer(geocoder, logger)
}

// ProvideNormalizer creates the result normalizer
func ProvideNormalizer() *services.ResultNormalizer {
	return services.NewResultNormalizer()
}

// ProvideStatsAggregator creates the sentiment statistics aggregator
func ProvideStatsAggregator() *services.StatsAggregator {
	return services.NewStatsAggregator()
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, commandbus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd commandbus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(writer ports.EventWriter, logger *zap.Logger) *commandbus.CommandBus {
	commandBus := commandbus.NewCommandBus()

	recordHandler := commands_handlers.NewRecordEventHandler(writer, logger)
	commandBus.Register(commands.RecordEventCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd commandbus.Command) error {
			recordCmd, ok := cmd.(commands.RecordEventCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return recordHandler.Handle(ctx, recordCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	cfg *config.Config,
	extractor ports.ParameterExtractor,
	store ports.EventStore,
	summarizer ports.EventSummarizer,
	normalizer *services.ResultNormalizer,
	aggregator *services.StatsAggregator,
	renderer *maprenderer.Renderer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	answerHandler := queries_handlers.NewAnswerHandler(
		extractor, store, normalizer, aggregator, cfg.StoreQueryTimeout, metrics, logger)
	queryBus.Register(queries.AnswerQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			answerQuery, ok := query.(queries.AnswerQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return answerHandler.Handle(ctx, answerQuery)
		},
	})

	visualizeHandler := queries_handlers.NewVisualizeHandler(answerHandler, renderer, metrics, logger)
	queryBus.Register(queries.VisualizeQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			visQuery, ok := query.(queries.VisualizeQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return visualizeHandler.Handle(ctx, visQuery)
		},
	})

	getEventHandler := queries_handlers.NewGetEventHandler(store, summarizer, normalizer, logger)
	queryBus.Register(queries.GetEventQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetEventQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getEventHandler.Handle(ctx, getQuery)
		},
	})

	return queryBus
}
