// Package csvimport turns the semicolon-delimited consumables CSV into
// the canonical inventory document. The format is not RFC 4180: quoted
// item names may span several physical lines and are closed by the
// two-character sequence `";` wherever it appears on a later line, so
// the parser works line by line with a pending-name accumulator instead
// of a generic CSV reader.
package csvimport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// whitespace runs inside a name collapse to a single space.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Parse reads the CSV stream and returns a fresh inventory document.
// The first line is a header and is skipped. Ids are assigned
// sequentially from item-1; pre-existing documents are never consulted.
func Parse(r io.Reader) (types.Inventory, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inv := types.NewInventory()
	var pendingName string
	pending := false
	header := true

	appendItem := func(name, quantity, group string) {
		inv.Items = append(inv.Items, types.Item{
			ID:       inv.NewID(),
			Name:     normalizeName(name),
			Quantity: quantity,
			Group:    group,
		})
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}

		if pending {
			if idx := strings.Index(line, `";`); idx >= 0 {
				// Closing line: any text before the closing quote still
				// belongs to the name, the remainder carries quantity
				// and group.
				if head := strings.TrimSpace(line[:idx]); head != "" {
					pendingName += " " + head
				}
				parts := strings.Split(line[idx+2:], ";")
				quantity := strings.TrimSpace(parts[0])
				group := ""
				if len(parts) > 1 {
					group = strings.TrimSpace(parts[1])
				}
				appendItem(pendingName, quantity, group)
				pending = false
				pendingName = ""
			} else {
				pendingName += " " + line
			}
			continue
		}

		if strings.HasPrefix(line, `"`) && !strings.Contains(line, `";`) {
			// Opening line of a multi-line quoted name.
			pendingName = strings.TrimSpace(line[1:])
			pending = true
			continue
		}

		parts := strings.Split(line, ";")
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) && len(name) >= 2 {
			name = name[1 : len(name)-1]
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		quantity := strings.TrimSpace(parts[1])
		group := ""
		if len(parts) > 2 {
			group = strings.TrimSpace(parts[2])
		}
		appendItem(name, quantity, group)
	}
	if err := scanner.Err(); err != nil {
		return types.Inventory{}, fmt.Errorf("reading csv: %w", err)
	}

	// An item still open at end of file is flushed with safe defaults.
	if pending {
		appendItem(pendingName, "0", "")
	}

	inv.Touch()
	return inv, nil
}

// Import parses the CSV file at path and overwrites the store's
// document with the result. Nothing is written when parsing fails.
// Returns the number of imported items.
func Import(path string, store types.Store) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	inv, err := Parse(f)
	if err != nil {
		return 0, err
	}
	if err := store.Replace(inv); err != nil {
		return 0, fmt.Errorf("writing inventory: %w", err)
	}
	return len(inv.Items), nil
}
