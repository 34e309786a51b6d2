package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/dbgx/internal/game"
	dbgxnet "github.com/peterkuimelis/dbgx/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
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
	fmt.Println("  dbgx host [--name NAME] [--players N] [--port P] [--setup NAME] [--setups FILE] [--seed S]")
	fmt.Println("  dbgx join [--name NAME] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as seat 0")
	fmt.Println("  join    Connect to a game server and take the next seat")
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	name := fs.String("name", "Host", "your display name")
	players := fs.Int("players", 2, "total number of players (2-4)")
	port := fs.String("port", "4444", "TCP port to listen on")
	setupName := fs.String("setup", "", "named kingdom setup (default: the standard first-game kingdom)")
	setupsFile := fs.String("setups", "setups.yaml", "path to kingdom setups file")
	seed := fs.Int64("seed", 0, "RNG seed (0 = random)")
	verbose := fs.Bool("v", false, "verbose server logging")
	fs.Parse(args)

	var kingdom []string
	if *setupName != "" {
		setups, err := game.LoadSetups(*setupsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		setup, ok := game.FindSetup(setups, *setupName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no setup named %q in %s\n", *setupName, *setupsFile)
			os.Exit(1)
		}
		kingdom = setup.Cards
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	srv := &dbgxnet.Server{
		Port:     *port,
		Seats:    *players,
		HostName: *name,
		Kingdom:  kingdom,
		Seed:     *seed,
		Logger:   logger,
	}
	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	name := fs.String("name", "", "your display name")
	addr := fs.String("addr", "localhost:4444", "server address to connect to")
	fs.Parse(args)

	if err := dbgxnet.Connect(context.Background(), *addr, *name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
