package main

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/cli"
	"taskboard/internal/config"
)

func main() {
	app := cli.NewApp(config.NewConfig())
	defer app.Close()

	root := cli.NewRootCommand(app)
	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		app.Close()
		os.Exit(1)
	}
}
