package main

import (
	"context"
	"log"

	"github.com/i474232898/iss-finder/internal/cli"
)

func main() {
	if err := cli.New().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("issfinder: %v", err)
	}
}
