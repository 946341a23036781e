//go:build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Seeds a demo exporter/importer pair and a contracted trade so the CLI
// can be exercised without hand-registering organizations first.
//
// Usage: go run scripts/seed_demo.go [--db ~/.tradeflow/tradeflow.db]
func main() {
	dbPath := flag.String("db", "", "Path to the tradeflow database")
	flag.Parse()

	if *dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		*dbPath = filepath.Join(home, ".tradeflow", "tradeflow.db")
	}

	database, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	parties := []struct {
		did, name, country, role string
	}{
		{"did:web:finca-esperanza.example", "Finca Esperanza", "Honduras", "EXPORTER"},
		{"did:web:alpine-roasters.example", "Alpine Roasters AG", "Switzerland", "IMPORTER"},
	}
	for _, p := range parties {
		_, err := database.Exec(
			`INSERT OR IGNORE INTO parties (did, name, country, role) VALUES (?, ?, ?, ?)`,
			p.did, p.name, p.country, p.role,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed party %s: %v\n", p.did, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Seeded %s (%s)\n", p.name, p.role)
	}

	_, err = database.Exec(
		`INSERT OR IGNORE INTO trades (id, exporter_did, importer_did, commodity, incoterms, status)
		 VALUES ('TRADE-001', 'did:web:finca-esperanza.example', 'did:web:alpine-roasters.example',
		         'Arabica, washed, SHB EP', 'FOB', 'contracted')`,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed trade: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Seeded TRADE-001 (contracted)")
	fmt.Println()
	fmt.Println("Next: tradeflow shipment create --trade TRADE-001")
}
