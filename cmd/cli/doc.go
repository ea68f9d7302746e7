// Package cli builds the gitattrib command-line interface. It wires the Cobra
// root command to the layered configuration loader and the zap logger, and
// registers the analyze subcommand.
package cli
