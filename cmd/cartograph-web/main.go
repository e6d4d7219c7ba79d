package main

import (
	"fmt"
	"log"
	"os"

	"cartograph/internal/web"
)

func main() {
	cfg, err := web.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(cfg)
	log.Printf("cartograph web UI listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
