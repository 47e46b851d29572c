// Command seedclaims fills a database with demo claims for local
// development and end-to-end testing.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"claimboard/internal/models"
	"claimboard/internal/storage"

	"github.com/google/uuid"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var seedComments = []string{
	"Client visit, receipts attached",
	"Team offsite",
	"Airport transfer",
	"Conference accommodation",
	"Working lunch with supplier",
	"Monthly parking",
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("seedclaims", flag.ContinueOnError)
	fs.SetOutput(stderr)

	count := fs.Int("count", 12, "Number of claims to create")
	owner := fs.String("owner", "", "Username owning the seeded claims")
	dbPath := fs.String("db", "claims.db", "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *owner == "" {
		fmt.Fprintln(stdout, "Usage: seedclaims -owner <username> [-count <n>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: owner")
	}

	if path := os.Getenv("DB_PATH"); path != "" && *dbPath == "claims.db" {
		*dbPath = path
	}

	db, err := storage.NewDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	user, err := db.GetUserByUsername(*owner)
	if err != nil {
		return fmt.Errorf("owner %s not found: %w", *owner, err)
	}

	for i := 0; i < *count; i++ {
		docURL := fmt.Sprintf("https://docs.internal/receipts/%s.pdf", uuid.NewString())
		claim := &models.Claim{
			Amount:      float64(rand.Intn(95000)+500) / 100,
			Category:    models.AllCategories[rand.Intn(len(models.AllCategories))],
			Comments:    seedComments[rand.Intn(len(seedComments))],
			Status:      models.AllStatuses[rand.Intn(len(models.AllStatuses))],
			DocumentURL: &docURL,
			OwnerID:     user.ID,
		}
		if _, err := db.CreateClaim(claim); err != nil {
			return fmt.Errorf("failed to create claim %d: %w", i+1, err)
		}
	}

	fmt.Fprintf(stdout, "Seeded %d claims for %s\n", *count, user.Username)
	return nil
}
