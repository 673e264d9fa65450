package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pelada/internal/bootstrap"
)

func newCheckoutCmd(load Loader) *cobra.Command {
	var plan, userID string

	cmd := &cobra.Command{
		Use:     "checkout",
		Short:   "Open a hosted checkout session and print its URL",
		Example: "  peladactl checkout --plan monthly --user 9b2f4c1e-6a43-4f0e-9d7b-2f1a7c3e5d10",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			url, err := app.Initiator.CreateSession(cmd.Context(), plan, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan to buy (monthly or annual)")
	cmd.Flags().StringVar(&userID, "user", "", "User id the purchase belongs to")
	return cmd
}
