// Import command: seed the inventory document from a consumables CSV.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/csvimport"
)

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import a semicolon-delimited CSV into the inventory document",
	Long: `Import parses a semicolon-delimited consumables CSV (one header row,
quoted item names may span multiple lines) and overwrites the
configured inventory document with the result. The existing document,
including its ids, is discarded.

Example:
  pantry import products.csv
  pantry import --data-file /srv/pantry/inventory.json products.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	count, err := csvimport.Import(args[0], store)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	fmt.Printf("Successfully parsed %d items and created %s\n", count, cfg.DataFile)
	return nil
}
