package cli

import (
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/spf13/cobra"
)

func newUsersCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Look up and register users",
	}

	cmd.AddCommand(newUsersGetCommand(d))
	cmd.AddCommand(newUsersAddCommand(d))
	return cmd
}

func newUsersGetCommand(d *deps) *cobra.Command {
	var (
		email string
		id    int
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a user by email substring or by id",
		Example: `  lightbnb users get --email tristan@
  lightbnb users get --id 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			byEmail, byID := cmd.Flags().Changed("email"), cmd.Flags().Changed("id")
			if byEmail == byID {
				return errs.InvalidField("email", "exactly one of --email or --id is required")
			}

			ctx := cmd.Context()
			if err := d.connect(ctx); err != nil {
				return err
			}

			var (
				user *model.User
				err  error
			)
			if byEmail {
				user, err = d.users.GetUserWithEmail(ctx, email)
			} else {
				user, err = d.users.GetUserWithID(ctx, id)
			}
			if err != nil {
				return err
			}
			return d.print(user)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "match users whose email contains this text")
	cmd.Flags().IntVar(&id, "id", 0, "exact user id")
	return cmd
}

func newUsersAddCommand(d *deps) *cobra.Command {
	var in model.NewUser

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "name", "email", "password"); err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := d.connect(ctx); err != nil {
				return err
			}

			user, err := d.users.AddUser(ctx, in)
			if err != nil {
				return err
			}
			return d.print(user)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (stored as given)")
	return cmd
}
