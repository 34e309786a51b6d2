package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/dbgx/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	setupsFile := flag.String("setups", "setups.yaml", "path to kingdom setups YAML file")
	flag.Parse()

	srv, err := web.NewServer(*setupsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("dbgx web gateway listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
