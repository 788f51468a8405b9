package main

import (
	"context"
	"log"

	"authd/internal/client/api"
	"authd/internal/client/cli"
	"authd/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(api.NewClient(cfg.ServerAddr))

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
