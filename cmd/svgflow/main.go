package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"svgflow/internal/commands"
	"svgflow/internal/env"
	"svgflow/internal/logger"
)

func main() {
	_ = env.Load(".env")
	log := logger.New(env.Get(env.LogVar, logger.LogFilePath))

	reg := commands.NewRegistry()
	registerView(reg, log)
	registerExport(reg, log)
	registerInspect(reg, log)

	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, commands.ErrUsage) || errors.Is(err, flag.ErrHelp) {
			reg.Usage(os.Stderr, "svgflow")
			os.Exit(2)
		}
		log.Logf("error: %v", err)
		fmt.Fprintln(os.Stderr, "svgflow:", err)
		os.Exit(1)
	}
}
