package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/dendrascience/checkzip/internal/cmd"
	"github.com/dendrascience/checkzip/version"
)

func main() {
	info := version.Get()
	if err := fang.Execute(context.Background(), cmd.NewRootCmd(),
		fang.WithVersion(info.Version),
		fang.WithCommit(info.Commit),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
