package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	dbgxmcp "github.com/peterkuimelis/dbgx/internal/mcp"
)

func main() {
	setups := flag.String("setups", "setups.yaml", "path to kingdom setups YAML file")
	port := flag.String("port", "4445", "TCP port for the human player connection")
	name := flag.String("name", "Claude", "display name for the agent's seat")
	flag.Parse()

	dbgxmcp.SetSetupsFile(*setups)
	dbgxmcp.SetPort(*port)
	dbgxmcp.SetAgentName(*name)

	s := server.NewMCPServer("dbgx", "1.0.0")
	dbgxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
