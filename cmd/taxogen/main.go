package main

import (
	"os"

	"github.com/teranos/taxogen/cmd/taxogen/commands"
	"github.com/teranos/taxogen/logger"
)

func main() {
	rootCmd := commands.NewRootCmd()
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	cmd, err := rootCmd.ExecuteC()
	code := commands.Report(cmd, err)
	logger.Cleanup()
	os.Exit(code)
}
