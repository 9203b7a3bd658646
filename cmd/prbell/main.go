package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
)

// Build information injected at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const description = "Notifies you about GitHub pull requests awaiting your review."

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("prbell"),
		kong.Description(description),
		kong.Vars{"version": fmt.Sprintf("prbell %s (commit: %s)", Version, Commit)},
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
