package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func printContainer(w io.Writer, view *inventory.ContainerView, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()

	case formatTable:
		fmt.Fprintf(w, "%s (%d/%d slots used)\n", view.Name, view.Occupied, view.Capacity)
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "SLOT\tITEM\tCOUNT\tKIND\tSTACK")
		for _, slot := range view.Slots {
			if slot.IsEmpty() {
				fmt.Fprintf(tw, "%d\t-\t\t\t\n", slot.Index)
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
				slot.Index, slot.Item.Name, slot.Count, slot.Item.Kind, slot.StackID)
		}
		return tw.Flush()

	default:
		return errors.InvalidArgumentf("unknown output format %q", format)
	}
}
