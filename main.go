package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	rootCmd := SetupCommands()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
