// Export the card catalog as JSON for clients and tooling.
//
// Usage: go run scripts/export_catalog.go [-out catalog.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dominionfree/dominion-server-go/internal/game/cards"
)

type cardEntry struct {
	Name       string   `json:"name"`
	Set        string   `json:"set"`
	Cost       int      `json:"cost"`
	Money      int      `json:"money,omitempty"`
	VP         int      `json:"vp,omitempty"`
	VPPerCards int      `json:"vp_per_cards,omitempty"`
	Types      []string `json:"types"`
}

func main() {
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	catalog := cards.All()
	entries := make([]cardEntry, 0, len(catalog))
	for _, c := range catalog {
		entries = append(entries, cardEntry{
			Name:       c.Name,
			Set:        c.Set,
			Cost:       c.Cost,
			Money:      c.Money,
			VP:         c.VP,
			VPPerCards: c.VPPerCards,
			Types:      c.Types.Names(),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode catalog: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %d cards to %s\n", len(entries), *out)
}
