// Command iconfix assigns a random icon to every diary entry stored without
// one. It reads the same configuration as the server.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/daybook/internal/server"
	"github.com/dmitrijs2005/daybook/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	n, err := app.BackfillIcons(context.Background())
	if err != nil {
		log.Printf("icon backfill failed: %v", err)
		return
	}
	log.Printf("updated %d entries", n)
}
