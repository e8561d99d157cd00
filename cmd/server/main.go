package main

import (
	"context"
	"log"
	"os"

	"github.com/DanielTheTeacher/ActivityHub/internal/api"
	"github.com/DanielTheTeacher/ActivityHub/internal/ingest"
	"github.com/DanielTheTeacher/ActivityHub/internal/store"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	reg, err := ingest.LoadRegistry(os.Getenv("SOURCES_PATH"))
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	loader := ingest.NewLoader(reg)
	activities, err := loader.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load activities: %v", err)
	}

	srv := api.NewServer(store.New(activities), loader)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
