package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pelada/internal/backend"
	"pelada/internal/checkout"
	"pelada/internal/subscription"
)

func newConfigCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			gate := backend.NewGate(cfg.SupabaseURL, cfg.SupabaseAnonKey)
			status := "unconfigured"
			if gate.Configured() {
				status = "configured"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mode:     %s\n", cfg.Mode)
			fmt.Fprintf(out, "backend:  %s (%s)\n", status, cfg.BackendDriver)
			fmt.Fprintf(out, "gate:     %s\n", gateMode(cfg.GateBypass(gate.Configured())))
			fmt.Fprintf(out, "cache:    %s\n", orNone(cfg.RedisURL != ""))
			fmt.Fprintf(out, "checkout: %s\n\n", orNone(cfg.StripeSecretKey != ""))

			prices := checkout.PriceTableFromConfig(cfg)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PLAN\tPRICE\tMODE\tDISPLAY")
			for _, p := range subscription.Plans() {
				price, _ := prices.Lookup(string(p.ID))
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s/%s\n", p.ID, price.PriceID, price.Mode, p.PriceDisplay, p.Period)
			}
			return tw.Flush()
		},
	}
}

func gateMode(bypass bool) string {
	if bypass {
		return "open (development, backend unconfigured)"
	}
	return "enforced"
}

func orNone(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
