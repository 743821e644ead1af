package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

// tokenCmd firma un token con JWT_SECRET para probar la API en local.
type tokenCmd struct {
	actor  string
	name   string
	expMin int
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "genera un Bearer token de desarrollo" }
func (*tokenCmd) Usage() string {
	return `ledgerctl token -actor <id> [-name <nombre>] [-exp minutos]

  Firma un token con JWT_SECRET y JWT_ISSUER. En producción los tokens los emite
  el sistema de identidad.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.actor, "actor", "", "ID del actor (sub)")
	f.StringVar(&c.name, "name", "", "Nombre visible")
	f.IntVar(&c.expMin, "exp", 0, "Minutos de validez (default JWT_EXPIRATION_MINUTES)")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.actor == "" {
		fmt.Fprintln(os.Stderr, "Error: -actor es obligatorio")
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	exp := c.expMin
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, c.actor, c.name, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(tok)
	return subcommands.ExitSuccess
}
