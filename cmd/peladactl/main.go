package main

import (
	"context"
	"fmt"
	"os"

	"pelada/internal/cli"
	"pelada/internal/config"
)

func main() {
	if err := cli.NewRootCmd(config.Load).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
