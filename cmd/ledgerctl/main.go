// ledgerctl herramientas de línea de comandos sobre el kardex: carga inicial desde CSV,
// reporte ABC en la terminal y tokens de desarrollo.
//
// Uso: go run ./cmd/ledgerctl <subcomando> [flags]
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-ledger/internal/interfaces/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
