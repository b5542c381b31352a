package main

import (
	"fmt"
	"os"

	"github.com/buildvance/estimator-backend/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer theApp.Close()

	theApp.Log.Info("Server starting", "port", theApp.Cfg.Port)
	if err := theApp.Run(); err != nil {
		theApp.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
