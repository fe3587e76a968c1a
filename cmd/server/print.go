package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/model"
	"github.com/iliyamo/restaurant-booking/internal/seating"
)

var statusMarks = map[model.SeatStatus]string{
	model.SeatAvailable: " ",
	model.SeatReserved:  "R",
	model.SeatOccupied:  "X",
	model.SeatSelected:  "*",
}

func newFloorplanCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "floorplan",
		Short: "Print the generated floor plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seats := seating.Generate()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(seating.Rows(seats))
			}
			return printFloorplan(cmd.OutOrStdout(), seats)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")
	return cmd
}

func newMenuCmd(v *viper.Viper) *cobra.Command {
	var q catalog.Query
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printMenu(cmd.OutOrStdout(), catalog.Default().Filter(q), v.GetString("CURRENCY_SYMBOL"))
		},
	}
	cmd.Flags().StringVar(&q.Category, "category", "", "only this category")
	cmd.Flags().BoolVar(&q.VegOnly, "veg", false, "vegetarian items only")
	cmd.Flags().BoolVar(&q.AvailableOnly, "available", false, "hide unavailable items")
	v.SetDefault("CURRENCY_SYMBOL", "₹")
	return cmd
}

// printFloorplan writes one line per row, e.g. "A  [A1 R] [A2 X] [A3  ]",
// followed by a legend and the counts.
func printFloorplan(w io.Writer, seats []model.Seat) error {
	for _, row := range seating.Rows(seats) {
		cells := make([]string, 0, len(row.Seats))
		for _, s := range row.Seats {
			cells = append(cells, fmt.Sprintf("[%s %s]", s.ID, statusMarks[s.Status]))
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", row.Label, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	st := seating.CountStats(seats)
	_, err := fmt.Fprintf(w, "\nlegend: R reserved, X occupied, * selected\ntotal=%d available=%d reserved=%d occupied=%d\n",
		st.Total, st.Available, st.Reserved, st.Occupied)
	return err
}

func printMenu(w io.Writer, cats []model.Category, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cats {
		if _, err := fmt.Fprintf(tw, "%s %s\n", c.Icon, c.Name); err != nil {
			return err
		}
		for _, sub := range c.Subcategories {
			if _, err := fmt.Fprintf(tw, "  %s\n", sub.Name); err != nil {
				return err
			}
			for _, it := range sub.Items {
				flags := ""
				if it.IsVeg {
					flags = "veg"
				}
				if !it.Available {
					flags = strings.TrimSpace(flags + " sold out")
				}
				if _, err := fmt.Fprintf(tw, "    %s\t%s\t%s%d\t%d min\t%s\n", it.ID, it.Name, currency, it.Price, it.PrepTime, flags); err != nil {
					return err
				}
			}
		}
	}
	return tw.Flush()
}
