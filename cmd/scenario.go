package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nzgridlab/gridsim/app"
	"github.com/nzgridlab/gridsim/config"
	"github.com/nzgridlab/gridsim/core/model"
	"github.com/nzgridlab/gridsim/core/scenario"
	"github.com/nzgridlab/gridsim/infra/logger"
)

var (
	scenarioRegion     string
	scenarioView       string
	scenarioWeekday    int
	scenarioLightPct   float64
	scenarioHeavyPct   float64
	scenarioBehaviour  string
	scenarioCompliance float64
	scenarioExpansion  float64
	scenarioWindSolar  float64
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run one uptake projection and print the summary",
	RunE:  runScenario,
}

func init() {
	f := scenarioCmd.Flags()
	f.StringVar(&scenarioRegion, "region", model.WholeTerritory, "region name")
	f.StringVar(&scenarioView, "view", "zone", "grouping: zone or territorial")
	f.IntVar(&scenarioWeekday, "weekday", 0, "day of week, 0=Monday")
	f.Float64Var(&scenarioLightPct, "light-pct", 0, "target light EV uptake percent")
	f.Float64Var(&scenarioHeavyPct, "heavy-pct", 0, "target heavy EV uptake percent")
	f.StringVar(&scenarioBehaviour, "behaviour", string(scenario.StatusQuo), "charging behaviour")
	f.Float64Var(&scenarioCompliance, "compliance", 100, "behaviour compliance percent")
	f.Float64Var(&scenarioExpansion, "expansion", 0, "supply expansion percent")
	f.Float64Var(&scenarioWindSolar, "wind-solar", 100, "wind share of new supply, percent")
	rootCmd.AddCommand(scenarioCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	view, err := model.ParseView(scenarioView)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine := app.NewEngine(cfg.Data, logger.New("scenario-command"), nil)

	params := scenario.Params{
		TargetLightPct: scenarioLightPct,
		TargetHeavyPct: scenarioHeavyPct,
		Behaviour:      scenario.Behaviour(scenarioBehaviour),
		CompliancePct:  scenarioCompliance,
		ExpansionPct:   scenarioExpansion,
		WindSolarPct:   scenarioWindSolar,
	}
	res, err := engine.Scenario(scenarioRegion, scenarioWeekday, view, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "region:            %s\n", scenarioRegion)
	fmt.Fprintf(out, "new light EVs:     %.0f\n", res.NeededLight)
	fmt.Fprintf(out, "new heavy EVs:     %.0f\n", res.NeededHeavy)
	fmt.Fprintf(out, "extra demand:      %.2f MWh/day\n", res.ExtraDemandMWh)
	fmt.Fprintf(out, "mean demand/supply: %.3f\n", res.MeanRatio)
	fmt.Fprintf(out, "closest match:     %s (ratio %.3f)\n", res.ClosestTime, res.ClosestRatio)
	return nil
}
