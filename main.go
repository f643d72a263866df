package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"refdeck/api/router"
	"refdeck/classifier"
	"refdeck/config"
	"refdeck/db"
	"refdeck/embedder"
	"refdeck/internal/logger"
	"refdeck/repositories"
	"refdeck/services"
	"refdeck/thumbnail"
	"refdeck/vectorstore"
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")
	cfg := config.GetConfig()

	// The Mongo client connects lazily; Init only fails on a malformed URI.
	if err := db.Init(context.Background()); err != nil {
		log.Fatal("failed to initialize MongoDB client:", err)
	}

	svc := services.NewReferenceService(services.Options{
		Classifier: classifier.New(cfg.Classifier.Model),
		Embedder:   embedder.FromAppConfig(cfg.Embedding),
		Vectors: vectorstore.NewStorage(vectorstore.Config{
			URL:        config.QdrantURL(),
			Collection: config.QdrantCollection(),
			Timeout:    15 * time.Second,
		}),
		Store:       repositories.NewReferenceRepository(db.Database()),
		Thumbnails:  thumbnail.NewResolver(),
		TopK:        cfg.Search.TopK,
		MaxResults:  cfg.Search.MaxResults,
		EnrichBatch: cfg.Enrich.BatchSize,
	})

	r := router.New(svc)
	if err := r.Run(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
