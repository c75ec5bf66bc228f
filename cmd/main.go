package main

import (
	"context"
	"log"
	"os"

	"github.com/guizot/tech-news-digest/internal/app"
)

func main() {
	digest := app.New(context.Background())

	if err := digest.Run(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}
