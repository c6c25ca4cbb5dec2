package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/dataset"
	sberrors "github.com/matzehuels/stackbar/pkg/errors"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	category  string
	series    string
	threshold string
	sheet     string
	selectors []string // category selectors to resolve
	digits    int
	unit      string
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{digits: 1, unit: string(units.Auto)}

	cmd := &cobra.Command{
		Use:   "inspect [data file]",
		Short: "Show how a data file is read",
		Long: `Inspect prints the table stackbar reads from a data file: categories in
order, series values, stacked totals and thresholds. Use --select to check
which rows a category selector resolves to before putting it in a config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := units.ParseUnit(opts.unit)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], u, opts)
		},
	}

	addReadFlags(cmd, &opts.category, &opts.series, &opts.threshold, &opts.sheet)
	cmd.Flags().StringArrayVar(&opts.selectors, "select", nil, "category selector to resolve (repeatable)")
	cmd.Flags().IntVar(&opts.digits, "digits", opts.digits, "decimal places for values")
	cmd.Flags().StringVar(&opts.unit, "units", opts.unit, "display units: auto, none, K, M, B, T")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, u units.Unit, opts inspectOpts) error {
	t, err := dataset.Load(ctx, input, readOptions(opts.category, opts.series, opts.threshold, opts.sheet))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, StyleTitle.Render(input))
	fmt.Fprintln(c.Out, tableView(t, opts.digits, u))
	c.printKeyValue("Categories", fmt.Sprint(len(t.Rows)))
	c.printKeyValue("Series", fmt.Sprint(len(t.Series)))
	c.printKeyValue("Min value", units.Format(t.Numeric.Min, opts.digits, u))
	c.printKeyValue("Max stack", units.Format(t.Numeric.Max, opts.digits, u))
	c.printKeyValue("Axis max", units.Format(t.Numeric.TopRounded, opts.digits, u))

	for _, sel := range opts.selectors {
		idx, err := t.Resolve(sel)
		labels := make([]string, len(idx))
		for i, r := range idx {
			labels[i] = t.Rows[r].Category
		}
		if missing := sberrors.Unresolved(err); len(missing) > 0 {
			c.printWarning("%q: no category named %s", sel, strings.Join(missing, ", "))
		} else if err != nil {
			c.printWarning("%q: %v", sel, err)
		}
		if len(labels) > 0 {
			c.printSuccess("%q → rows %v %v", sel, idx, labels)
		}
	}
	return nil
}

// tableView renders t with one row per category and a stacked total.
func tableView(t dataset.Table, digits int, u units.Unit) string {
	headers := append([]string{"Category"}, t.Series...)
	headers = append(headers, "Total")
	withThreshold := len(t.Thresholds) > 0
	if withThreshold {
		headers = append(headers, "Threshold")
	}

	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := []string{r.Category}
		total := 0.0
		for _, s := range t.Series {
			v := r.Values[s]
			total += v
			row = append(row, units.Format(v, digits, u))
		}
		row = append(row, units.Format(total, digits, u))
		if withThreshold {
			cell := ""
			if i < len(t.Thresholds) {
				cell = units.Format(t.Thresholds[i], digits, u)
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	return renderTable(headers, rows)
}
