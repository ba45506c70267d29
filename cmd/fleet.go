package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nzgridlab/gridsim/app"
	"github.com/nzgridlab/gridsim/config"
	"github.com/nzgridlab/gridsim/core/fleet"
	"github.com/nzgridlab/gridsim/core/model"
	"github.com/nzgridlab/gridsim/infra/logger"
)

var fleetView string

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Print the per-region fleet composition",
	RunE:  runFleet,
}

func init() {
	fleetCmd.Flags().StringVar(&fleetView, "view", "zone", "grouping: zone or territorial")
	rootCmd.AddCommand(fleetCmd)
}

func runFleet(cmd *cobra.Command, args []string) error {
	view, err := model.ParseView(fleetView)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine := app.NewEngine(cfg.Data, logger.New("fleet-command"), nil)
	summary, err := engine.FleetSummary(view)
	if err != nil {
		return err
	}

	regions := make([]string, 0, len(summary))
	for name := range summary {
		if name != model.WholeTerritory {
			regions = append(regions, name)
		}
	}
	sort.Strings(regions)
	regions = append(regions, model.WholeTerritory)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-45s %10s %10s %10s %10s %8s %8s\n",
		"REGION", "LIGHT EV", "HEAVY EV", "LIGHT ICE", "HEAVY ICE", "EV%", "L/H")
	for _, name := range regions {
		c := summary[name]
		share := fleet.EVShare(c, false)
		fmt.Fprintf(out, "%-45s %10d %10d %10d %10d %7.2f%% %8.1f\n",
			name, c.LightElectric, c.HeavyElectric, c.LightCombustion, c.HeavyCombustion,
			share, fleet.LightHeavyRatio(c))
	}
	return nil
}
