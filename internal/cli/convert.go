package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/measures/internal/logger"
	"github.com/mesh-intelligence/measures/pkg/types"
	"github.com/mesh-intelligence/measures/pkg/units"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <category> <from> <to> <amount>",
		Short: "Convert an amount between two units of a category",
		Long: `Convert an amount between two units of an explicitly chosen category.

Run "measures categories" and "measures units <category>" to see the
available names. Unit tokens are case-sensitive.

Flags must come before the category so that negative amounts such as -40
are read as the amount.`,
		Example: `  measures convert length kilometer mile 10
  measures convert temperature celsius fahrenheit -40
  measures convert --json storage gb mb 1.5`,
		Args: cobra.ExactArgs(4),
		RunE: a.runConvert,
	}
	// Stop flag parsing at the first positional so "-40" is not a shorthand.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	category, from, to, amountArg := args[0], args[1], args[2], args[3]

	amount, err := parseAmount(amountArg)
	if err != nil {
		return err
	}

	result, err := a.converter.Convert(category, from, to, amount)
	if err != nil {
		logger.L().Info("convert.failed", "category", category, "from", from, "to", to, "error", err)
		return err
	}
	logger.L().Info("convert.done", "category", category, "from", from, "to", to, "amount", amount, "result", result)

	a.record(cmd, types.Conversion{
		Mode:     types.ModeStandard,
		Category: category,
		FromUnit: from,
		ToUnit:   to,
		Amount:   amount,
		Result:   result,
	})

	return a.printConversion(cmd, conversionOutput{
		Mode:     types.ModeStandard,
		Category: category,
		FromUnit: from,
		ToUnit:   to,
		Amount:   amount,
		Result:   jsonFloat(result),
	})
}

// parseAmount parses a command-line amount. NaN and infinities parse here
// and are rejected by the converter.
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", types.ErrInvalidAmount, s)
	}
	return v, nil
}

func newSmartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "smart <expression>",
		Short: "Convert a free-text expression such as \"10 kilometer to mile\"",
		Long: `Parse "<amount><unit> to <unit>" and convert it. The category is the
first one, in catalog order, that declares both unit tokens. Tokens must be
written exactly as declared; there are no abbreviations.`,
		Example: `  measures smart 10 kilometer to mile
  measures smart "100celsius to fahrenheit"`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runSmart,
	}
}

func (a *app) runSmart(cmd *cobra.Command, args []string) error {
	// History stores the compacted expression.
	input := units.CompactSpace(strings.Join(args, " "))

	expr, result, err := a.converter.Smart(input)
	if err != nil {
		logger.L().Info("smart.failed", "input", input, "error", err)
		return err
	}
	logger.L().Info("smart.done", "input", input, "category", expr.Category.ID, "result", result)

	a.record(cmd, types.Conversion{
		Mode:       types.ModeSmart,
		Expression: input,
		Category:   expr.Category.ID,
		FromUnit:   expr.FromUnit,
		ToUnit:     expr.ToUnit,
		Amount:     expr.Amount,
		Result:     result,
	})

	return a.printConversion(cmd, conversionOutput{
		Mode:       types.ModeSmart,
		Expression: input,
		Category:   expr.Category.ID,
		FromUnit:   expr.FromUnit,
		ToUnit:     expr.ToUnit,
		Amount:     expr.Amount,
		Result:     jsonFloat(result),
	})
}

// printConversion writes one result in text or JSON form.
func (a *app) printConversion(cmd *cobra.Command, out conversionOutput) error {
	out.Formatted = units.FormatResult(out.Amount, out.FromUnit, float64(out.Result), out.ToUnit, a.cfg.Precision)
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out.Formatted)
	return err
}
