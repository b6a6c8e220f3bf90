package main

import (
	"os"

	"github.com/tboutron/prisma-uml/pkg/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
