package main

import (
	"fmt"
	"os"

	"labkit/internal/cli"
	"labkit/internal/config"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())

	root := cli.NewRootCommand(config.NewLoader(), factory.CreateRepository)
	defer root.Close()

	if err := root.Execute(); err != nil {
		handler := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %s\n", handler.Message(err))
		root.Close()
		os.Exit(handler.ExitCode(err))
	}
}
