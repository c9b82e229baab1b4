package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"concilia/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	app, err := ui.NewApp(ui.Config{Port: port})
	if err != nil {
		log.Fatal("Failed to create app:", err)
	}

	log.Printf("Starting Concilia on http://localhost:%s", port)
	log.Fatal(app.Start())
}
