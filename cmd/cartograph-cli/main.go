package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cartograph/internal/game"
	cartnet "cartograph/internal/net"
	"cartograph/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  cartograph-cli host [--port P] [--config FILE] [--db FILE] [--game ID]")
	fmt.Println("  cartograph-cli join [--addr ADDR] [--game ID]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as Player 1")
	fmt.Println("  join    Connect to a game server and play as Player 2")
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	configFile := fs.String("config", "", "path to game config YAML file")
	dbFile := fs.String("db", "", "path to SQLite database for game snapshots")
	gameID := fs.String("game", "", "resume a stored game by id")
	fs.Parse(args)

	cfg := game.DefaultConfig()
	if *configFile != "" {
		parsed, err := game.ParseConfigFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = parsed
	}

	var st store.Store
	if *dbFile != "" {
		sq, err := store.OpenSQLite(*dbFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer sq.Close()
		st = sq
	}

	srv := &cartnet.Server{
		Port:   *port,
		Config: cfg,
		Store:  st,
		GameID: *gameID,
	}

	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	gameID := fs.String("game", "", "game id to resume")
	fs.Parse(args)

	if err := cartnet.Connect(context.Background(), *addr, *gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
