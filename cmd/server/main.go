package main

import (
	"flag"
	"log"

	"procurement-bidding-api/app"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML config file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatal(err)
	}
}
