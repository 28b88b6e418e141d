package cli

import (
	"github.com/deppfellow/lightbnb/internal/query"
	"github.com/spf13/cobra"
)

func newReservationsCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List reservations",
	}

	cmd.AddCommand(newReservationsListCommand(d))
	return cmd
}

func newReservationsListCommand(d *deps) *cobra.Command {
	var guestID, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a guest's past reservations, earliest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "guest-id"); err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := d.connect(ctx); err != nil {
				return err
			}

			reservations, err := d.reservations.GetAllReservations(ctx, guestID, limit)
			if err != nil {
				return err
			}
			return d.print(reservations)
		},
	}

	cmd.Flags().IntVar(&guestID, "guest-id", 0, "guest user id")
	cmd.Flags().IntVar(&limit, "limit", query.DefaultLimit, "maximum number of reservations")
	return cmd
}
