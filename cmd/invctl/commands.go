package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/item"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		capacity int
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.service.Create(cmd.Context(), &inventory.CreateInput{
				Name:      args[0],
				Capacity:  capacity,
				Overwrite: force,
			})
			if err != nil {
				return err
			}
			return printContainer(a.out, out.Container, formatTable)
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 20, "number of slots")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing inventory with the same name")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var (
		kind        string
		countable   bool
		maxStack    int
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <item> [quantity]",
		Short: "Add items to an inventory",
		Long: `Add items to an inventory. The item is looked up in the catalog when one is
configured; otherwise it is described by the --kind, --countable, --max-stack and
--description flags.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity := 1
			if len(args) == 3 {
				n, err := strconv.Atoi(args[2])
				if err != nil {
					return errors.InvalidArgumentf("quantity %q is not a number", args[2])
				}
				quantity = n
			}

			it := item.Item{
				Name:        args[1],
				Kind:        item.Kind(kind),
				Countable:   countable,
				MaxStack:    maxStack,
				Description: description,
			}
			if a.catalog != nil {
				found, err := a.catalog.Lookup(args[1])
				if err != nil {
					return err
				}
				it = found
			}

			out, err := a.service.AddItem(cmd.Context(), &inventory.AddItemInput{
				Name:     args[0],
				Item:     it,
				Quantity: quantity,
			})
			if out != nil {
				fmt.Fprintf(a.out, "%s: added %d of %s, %d left over\n",
					out.Status, out.Added, it.Name, out.Remaining)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(item.KindMisc), "item kind")
	cmd.Flags().BoolVar(&countable, "countable", false, "item stacks")
	cmd.Flags().IntVar(&maxStack, "max-stack", 1, "largest stack of a countable item")
	cmd.Flags().StringVar(&description, "description", "", "item description")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var (
		stackID  string
		slot     int
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove items from one stack",
		Long: `Remove items from the stack selected by --id or --slot. A quantity of 0
removes the whole stack.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &inventory.RemoveItemInput{
				Name:     args[0],
				StackID:  stackID,
				Quantity: quantity,
			}
			if cmd.Flags().Changed("slot") {
				input.Slot = &slot
			}

			out, err := a.service.RemoveItem(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\n", out.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&stackID, "id", "", "stack id")
	cmd.Flags().IntVar(&slot, "slot", 0, "slot index")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "how many to remove (0 removes the stack)")
	cmd.MarkFlagsMutuallyExclusive("id", "slot")
	cmd.MarkFlagsOneRequired("id", "slot")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print an inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.service.Get(cmd.Context(), &inventory.GetInput{Name: args[0]})
			if err != nil {
				return err
			}
			return printContainer(a.out, out.Container, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func newSortCmd(a *app) *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "sort <name>",
		Short: "Move stacks to the front, optionally ordered by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.service.Sort(cmd.Context(), &inventory.SortInput{Name: args[0], ByName: byName})
			if err != nil {
				return err
			}
			return printContainer(a.out, out.Container, formatTable)
		},
	}

	cmd.Flags().BoolVar(&byName, "by-name", false, "order stacks alphabetically")
	return cmd
}

func newResizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <name> <capacity>",
		Short: "Change the number of slots",
		Long: `Change the number of slots. Stacks are packed to the front first; any that
still do not fit are dropped and listed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.InvalidArgumentf("capacity %q is not a number", args[1])
			}

			out, err := a.service.Resize(cmd.Context(), &inventory.ResizeInput{Name: args[0], Capacity: capacity})
			if err != nil {
				return err
			}
			for _, stack := range out.Dropped {
				log.Printf("Dropped %d x %s (stack %s)", stack.Count, stack.Item.Name, stack.StackID)
			}
			return printContainer(a.out, out.Container, formatTable)
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <name>",
		Short: "Empty every slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.service.Clear(cmd.Context(), &inventory.ClearInput{Name: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "cleared %s\n", args[0])
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.service.Delete(cmd.Context(), &inventory.DeleteInput{Name: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved inventories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.service.List(cmd.Context(), &inventory.ListInput{})
			if err != nil {
				return err
			}
			for _, name := range out.Names {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}
}
