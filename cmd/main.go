package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/marktudor11/fitlytics/config"
	"github.com/marktudor11/fitlytics/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter(config.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
