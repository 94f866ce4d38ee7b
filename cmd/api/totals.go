package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/domain/totals"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var totalsCmd = &cobra.Command{
	Use:   "totals [file]",
	Short: "Compute document totals for a JSON file of line items",
	Long: `Run the totals calculator used by estimations and invoices over a JSON document
and print the recomputed line items and totals. Reads stdin when no file is given.

Input format:
  {"line_items": [{"name": "Pads", "quantity": 2, "rate": 100}],
   "tax_percentage": 12.5, "discount_amount": 0}`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return runTotals(in, cmd.OutOrStdout())
	},
}

type totalsFile struct {
	LineItems []struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		Quantity    *decimal.Decimal `json:"quantity"`
		Rate        decimal.Decimal  `json:"rate"`
	} `json:"line_items"`
	TaxPercentage  decimal.Decimal `json:"tax_percentage"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

type totalsLine struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Rate     string `json:"rate"`
	Amount   string `json:"amount"`
}

type totalsOutput struct {
	LineItems      []totalsLine `json:"line_items"`
	Subtotal       string       `json:"subtotal"`
	TaxPercentage  string       `json:"tax_percentage"`
	TaxAmount      string       `json:"tax_amount"`
	DiscountAmount string       `json:"discount_amount"`
	TotalAmount    string       `json:"total_amount"`
}

func runTotals(r io.Reader, w io.Writer) error {
	var doc totalsFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode line items: %w", err)
	}

	items := make([]entities.LineItemInput, 0, len(doc.LineItems))
	for _, li := range doc.LineItems {
		items = append(items, entities.LineItemInput{
			Name:        li.Name,
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
		})
	}

	res, err := totals.Calculate(totals.Input{
		Items:          items,
		TaxPercentage:  doc.TaxPercentage,
		DiscountAmount: doc.DiscountAmount,
		ItemsField:     "line_items",
	})
	if err != nil {
		return err
	}

	out := totalsOutput{
		LineItems:      make([]totalsLine, 0, len(res.Items)),
		Subtotal:       res.Subtotal.StringFixed(2),
		TaxPercentage:  res.TaxPercentage.String(),
		TaxAmount:      res.TaxAmount.StringFixed(2),
		DiscountAmount: res.DiscountAmount.StringFixed(2),
		TotalAmount:    res.TotalAmount.StringFixed(2),
	}
	for _, it := range res.Items {
		out.LineItems = append(out.LineItems, totalsLine{
			Name:     it.Name,
			Quantity: it.Quantity.String(),
			Rate:     it.Rate.StringFixed(2),
			Amount:   it.Amount.StringFixed(2),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
