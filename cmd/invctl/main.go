// Package main is the entry point for invctl, a tool to inspect and edit
// saved inventories.
//
// Failures exit with the gRPC status code of the error (5 not found,
// 8 inventory full, 15 corrupt save, and so on) so scripts can tell
// them apart.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Stdout, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to a process exit status
func exitCode(err error) int {
	code := int(errors.GRPCStatus(err).Code())
	if code == 0 {
		return 1
	}
	return code
}
