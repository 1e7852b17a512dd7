package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/darisadam/bankist-server/internal/pkg/format"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const usage = "Usage: seeds [check|export] [file]"

var errUsage = errors.New(usage)

func main() {
	// Load .env
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	file := os.Getenv("SEED_FILE")
	if len(args) > 1 {
		file = args[1]
	}

	switch args[0] {
	case "check":
		if file == "" {
			return fmt.Errorf("no seed file given and SEED_FILE is not set")
		}
		return check(file, out)
	case "export":
		return export(file, out)
	default:
		return errUsage
	}
}

// check loads a seed file the same way the API does and prints the
// resulting accounts.
func check(file string, out io.Writer) error {
	seeds, err := account.LoadSeeds(file)
	if err != nil {
		return err
	}
	accounts, err := account.NewAccounts(seeds, bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("invalid seed file: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tOWNER\tMOVEMENTS\tBALANCE")
	for _, acc := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			acc.UserName, acc.Owner, len(acc.Movements),
			format.Currency(account.Balance(acc), acc.Locale, acc.Currency))
	}
	return tw.Flush()
}

// export writes the built-in demo accounts as a seed file.
func export(file string, out io.Writer) error {
	data, err := json.MarshalIndent(account.DefaultSeeds(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode seeds: %w", err)
	}
	data = append(data, '\n')

	if file == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(file, data, 0o600); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	fmt.Fprintf(out, "Wrote %d accounts to %s\n", len(account.DefaultSeeds()), file)
	return nil
}
