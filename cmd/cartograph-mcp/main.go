package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	cartmcp "cartograph/internal/mcp"
	"cartograph/internal/store"
)

func main() {
	port := flag.String("port", "9999", "TCP port for human player connection")
	configFile := flag.String("config", "", "path to game config YAML file")
	dbFile := flag.String("db", "", "path to SQLite database for game snapshots")
	flag.Parse()

	cartmcp.SetPort(*port)
	cartmcp.SetConfigFile(*configFile)

	if *dbFile != "" {
		st, err := store.OpenSQLite(*dbFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		cartmcp.SetStore(st)
	}

	s := server.NewMCPServer("cartograph", "1.0.0")
	cartmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
