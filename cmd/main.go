package main

import (
	"context"
	"os"

	"github.com/okian/statusboard/internal/cli"
	"github.com/okian/statusboard/pkg/logger"
)

func main() {
	err := cli.Execute(context.Background())
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
