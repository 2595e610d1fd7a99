package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/model"
)

var (
	planParams *paramFlags
	planStock  float64
	planKerf   float64
	planWaste  float64
	planPrice  float64

	planGenetic bool
	planCompare bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan the cutting of stock bars and estimate the order",
	Long: `Cut every bar of the beam, times the number of elements, from stock
lengths (first fit decreasing per grade and diameter) and estimate the
mass and cost of the order.

Examples:
  beamdetail plan --preset B1 --number-of-elements 8
  beamdetail plan --params beam.yaml --stock-length 6000 --waste 10 --price 4.2
  beamdetail plan --preset B1 --genetic --compare`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planParams = addParamFlags(planCmd)
	planCmd.Flags().Float64Var(&planStock, "stock-length", 0, "stock bar length (mm, default from config)")
	planCmd.Flags().Float64Var(&planKerf, "kerf", 0, "cutting allowance per cut (mm, default from config)")
	planCmd.Flags().Float64Var(&planWaste, "waste", 0, "extra order percentage (default from config)")
	planCmd.Flags().Float64Var(&planPrice, "price", 0, "price per kg (default from config)")
	planCmd.Flags().BoolVar(&planGenetic, "genetic", false, "search the cutting order with a genetic algorithm")
	planCmd.Flags().BoolVar(&planCompare, "compare", false, "compare the plan with alternative cutting settings")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := planParams.resolve(cmd)
	if err != nil {
		return err
	}
	_, res, err := runDetailer(cfg)
	if err != nil {
		return err
	}

	stock, kerf, waste, price := state.app.DefaultStockLength, state.app.DefaultCutAllow, state.app.DefaultWastePct, state.app.DefaultPricePerKg
	fs := cmd.Flags()
	if fs.Changed("stock-length") {
		stock = planStock
	}
	if fs.Changed("kerf") {
		kerf = planKerf
	}
	if fs.Changed("waste") {
		waste = planWaste
	}
	if fs.Changed("price") {
		price = planPrice
	}

	planner := engine.NewCutPlanner(stock, kerf)
	var plan engine.CutPlan
	strategy := engine.StrategyFirstFit
	if planGenetic {
		strategy = engine.StrategyGenetic
		plan = planner.PlanGenetic(res.Records, cfg.Elements, engine.DefaultGeneticConfig())
	} else {
		plan = planner.Plan(res.Records, cfg.Elements)
	}
	state.logger.Debug().
		Str("strategy", strategy).
		Int("stock_bars", plan.StockBars()).
		Float64("utilization", plan.Utilization()).
		Msg("cutting plan ready")
	est := model.CalculatePurchaseEstimate(plan.Usage(), waste, price, detailerOptions().Density)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "CUTTING PLAN: %s x %d (%s)\n", cfg.Name, cfg.Elements, strategy)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  GRADE\tDIA\tSTOCK\tBARS\tUSE %\tPIECES")
	for _, g := range plan.Groups {
		for i, b := range g.Bars {
			lead := "\t\t\t"
			if i == 0 {
				lead = fmt.Sprintf("%s\t⌀%s\t%s\t", g.Grade, model.FormatNumber(g.Diameter), model.FormatNumber(g.StockLength))
			}
			fmt.Fprintf(w, "  %s%d\t\t%s\n", lead, i+1, describePieces(b.Pieces))
		}
		fmt.Fprintf(w, "  \t\t\t%d\t%.1f\t\n", len(g.Bars), g.Utilization())
	}
	w.Flush()
	for _, p := range plan.Unplaced() {
		fmt.Fprintf(out, "  ⚠ mark %d (%s mm) is longer than the stock bar\n", p.Mark, model.FormatNumber(p.Length))
	}
	fmt.Fprintln(out)

	if offcuts := plan.ReusableOffcuts(model.MinOffcutLength); len(offcuts) > 0 {
		fmt.Fprintln(out, "OFFCUTS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, o := range offcuts {
			fmt.Fprintf(w, "  %s\t%s ⌀%s\t%s mm\t%.1f kg\n", o.ID, o.Grade, model.FormatNumber(o.Diameter), model.FormatNumber(o.Length), o.Mass(detailerOptions().Density))
		}
		fmt.Fprintf(w, "  Total:\t\t%s mm\t\n", model.FormatNumber(model.TotalOffcutLength(offcuts)))
		w.Flush()
		fmt.Fprintln(out)
	}

	if planCompare {
		printComparison(cmd, engine.CompareScenarios(engine.BuildDefaultScenarios(stock, kerf, strategy), res.Records, cfg.Elements))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "ORDER:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, l := range est.Lines {
		fmt.Fprintf(w, "  %s ⌀%s:\t%d bars\t%.1f kg\n", l.Grade, model.FormatNumber(l.Diameter), l.OrderBars, l.Mass)
	}
	fmt.Fprintf(w, "  Built in:\t%.1f kg\t\n", est.UsedMass)
	fmt.Fprintf(w, "  Stock used:\t%.1f kg\t(%.1f%% offcuts)\n", est.StockMass, est.OffcutPercent)
	fmt.Fprintf(w, "  Order:\t%.1f kg\t(+%.0f%% waste)\n", est.OrderMass, est.WastePercent)
	if est.PricePerKg > 0 {
		fmt.Fprintf(w, "  Estimated cost:\t%.2f\t\n", est.EstimatedCost)
	}
	w.Flush()
	return nil
}

// printComparison prints one row per cutting scenario.
func printComparison(cmd *cobra.Command, results []engine.ComparisonResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "COMPARISON:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  SCENARIO\tSTOCK\tKERF\tBARS\tUSE %\tWASTE %\tUNPLACED")
	for _, r := range results {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%.1f\t%.1f\t%d\n",
			r.Scenario.Name, model.FormatNumber(r.Scenario.StockLength), model.FormatNumber(r.Scenario.Kerf),
			r.StockBars, r.Utilization, r.WastePercent, r.UnplacedCount)
	}
	w.Flush()
}

// describePieces prints the pieces of one stock bar, e.g. "1:5068 1:5068".
func describePieces(pieces []engine.Piece) string {
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = fmt.Sprintf("%d:%s", p.Mark, model.FormatNumber(p.Length))
	}
	return strings.Join(parts, " ")
}
