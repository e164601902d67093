package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"bicocerto/internal/app"
	"bicocerto/internal/application"
	"bicocerto/internal/confirmation"
	"bicocerto/internal/elastic_search"
	"bicocerto/internal/favorite"
	handlersApplication "bicocerto/internal/handlers/application"
	handlersConfirmation "bicocerto/internal/handlers/confirmation"
	handlersFavorite "bicocerto/internal/handlers/favorite"
	handlersListing "bicocerto/internal/handlers/listing"
	handlersReview "bicocerto/internal/handlers/review"
	handlersUser "bicocerto/internal/handlers/user"
	"bicocerto/internal/kafka"
	"bicocerto/internal/listing"
	"bicocerto/internal/middleware"
	"bicocerto/internal/moderation"
	"bicocerto/internal/review"
	"bicocerto/internal/session"
	"bicocerto/internal/user"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.CfgRedis.Addr,
		Password: "",
		DB:       0,
	})

	// init elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("error to elasticsearch client: %v", err)
	}
	esService := elastic.NewService(esClient, logger, c.CfgES.Index)

	// init kafka producer
	producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Warnf("error to close kafka producer: %v", err)
		}
	}()

	// init repositories
	userRepository := user.NewUserDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	listingRepository := listing.NewListingDBRepository(db, logger)
	applicationRepository := application.NewApplicationDBRepository(db, logger)
	confirmationRepository := confirmation.NewConfirmationDBRepository(db, logger)
	reviewRepository := review.NewReviewDBRepository(db, logger)
	favoriteRepository := favorite.NewFavoriteDBRepository(db, logger)

	moderator := moderation.NewBlocklistModerator(logger, c.ModerationBlocklist)

	// init handlers
	userHandlers := handlersUser.NewUserHandler(logger, userRepository, sessionRepository)
	listingHandlers := handlersListing.NewListingHandler(
		logger, listingRepository, userRepository, moderator, producer, esService,
	)
	applicationHandlers := handlersApplication.NewApplicationHandler(logger, applicationRepository)
	confirmationHandlers := handlersConfirmation.NewConfirmationHandler(logger, confirmationRepository, producer)
	reviewHandlers := handlersReview.NewReviewHandler(logger, reviewRepository, producer)
	favoriteHandlers := handlersFavorite.NewFavoriteHandler(logger, favoriteRepository)

	// init router; identity is optional here, each handler decides whether
	// the operation needs an authenticated caller
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Identity(sessionRepository))

	api.HandleFunc("/user/register", userHandlers.Register).Methods("POST")
	api.HandleFunc("/user/login", userHandlers.Login).Methods("POST")
	api.HandleFunc("/user/region", userHandlers.UpdateRegion).Methods("PUT")
	api.HandleFunc("/user/{id}", userHandlers.Info).Methods("GET")

	api.HandleFunc("/listing", listingHandlers.Create).Methods("POST")
	api.HandleFunc("/listings/search", listingHandlers.Search).Methods("GET")
	api.HandleFunc("/listings/suggest", listingHandlers.SuggestListings).Methods("GET")
	api.HandleFunc("/listing/{id}", listingHandlers.GetByID).Methods("GET")
	api.HandleFunc("/listing/{id}", listingHandlers.Delete).Methods("DELETE")

	api.HandleFunc("/listing/{id}/apply", applicationHandlers.Apply).Methods("POST")
	api.HandleFunc("/listing/{id}/applications", applicationHandlers.ListApplicants).Methods("GET")
	api.HandleFunc("/applications/mine", applicationHandlers.ListMine).Methods("GET")

	api.HandleFunc("/listing/{id}/confirm", confirmationHandlers.Confirm).Methods("POST")
	api.HandleFunc("/confirmations/owner", confirmationHandlers.ListAsOwner).Methods("GET")
	api.HandleFunc("/confirmations/applicant", confirmationHandlers.ListAsApplicant).Methods("GET")

	api.HandleFunc("/review", reviewHandlers.Submit).Methods("POST")
	api.HandleFunc("/review/check", reviewHandlers.HasReviewed).Methods("GET")
	api.HandleFunc("/reviews/user/{user_id}", reviewHandlers.GetByUser).Methods("GET")

	api.HandleFunc("/favorite/{listingID}", favoriteHandlers.Add).Methods("POST")
	api.HandleFunc("/favorite/{listingID}", favoriteHandlers.Remove).Methods("DELETE")
	api.HandleFunc("/favorites", favoriteHandlers.List).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}
