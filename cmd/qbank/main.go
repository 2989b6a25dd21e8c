// Package main provides the entry point for the qbank CLI tool.
package main

import (
	"github.com/agentstation/qbank/cmd/qbank/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(version, commit)
}
