package main

import (
	"context"
	"database/sql"
	"fmt"

	"bicocerto/internal/app"
	"bicocerto/internal/elastic_search"
	"bicocerto/internal/etl"
	"bicocerto/internal/indexer"
	"bicocerto/internal/kafka"
	"bicocerto/internal/listing"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

const cfgPath = "config/config.yaml"

func main() {
	// Init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := zapLogger.Sugar()
	defer func() { _ = zapLogger.Sync() }()

	// Parse config
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("Error parsing config: %v", err)
	}

	// Init DB
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("Error connecting to DB: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Errorf("DB ping failed: %v", err)
	}

	// Init Elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("Error creating elasticsearch client: %v", err)
	}

	esService := elastic.NewService(esClient, logger, c.CfgES.Index)

	ctx := context.Background()
	if err := esService.EnsureIndex(ctx); err != nil {
		logger.Fatalf("Error ensuring index: %v", err)
	}

	// Init Kafka Consumer
	consumer := kafka.NewConsumer(c.CfgKafka.Brokers, c.CfgKafka.Topic, c.CfgKafka.GroupID, logger)
	defer consumer.Close()

	listingRepository := listing.NewListingDBRepository(db, logger)
	service := indexer.NewService(listingRepository, esService, logger)

	// Start event processor
	go func() {
		consumer.Consume(ctx, func(ctx context.Context, event kafka.Event) error {
			return service.ProcessEvent(ctx, event)
		})
	}()

	// Backfill pipeline picks up rows the event path missed
	extractor := etl.NewPostgresExtractor(db, logger)
	transformer := etl.NewTransformer(logger)
	loader := etl.NewElasticLoader(esService, logger, db)
	pipeline := etl.NewPipeline(extractor, transformer, loader, logger, c.ETLInterval)

	logger.Info("Starting indexer")
	pipeline.Run(ctx)
}
