package main

import (
	"os"

	"github.com/thespike/vip-link-bot/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
