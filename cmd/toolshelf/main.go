package main

import (
	"log"

	"github.com/MrSnakeDoc/toolshelf/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ toolshelf failed to start: %v", err)
	}
}
