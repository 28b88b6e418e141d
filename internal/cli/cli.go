// Package cli implements the lightbnb command line.
//
// Every data operation is exposed as a subcommand that prints its result
// as JSON on stdout. Failures are printed as JSON on stderr and mapped to
// an exit code by error kind.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/utils"
	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// Exit codes by error kind.
const (
	ExitOK                  = 0
	ExitInternal            = 1
	ExitInvalidInput        = 2
	ExitNotFound            = 3
	ExitConstraintViolation = 4
	ExitConnection          = 5
)

// UserAPI is the user operations the commands call.
type UserAPI interface {
	GetUserWithEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithID(ctx context.Context, id int) (*model.User, error)
	AddUser(ctx context.Context, u model.NewUser) (*model.User, error)
}

// PropertyAPI is the property operations the commands call.
type PropertyAPI interface {
	GetAllProperties(ctx context.Context, opts map[string]string, limit int) ([]model.Property, error)
	AddProperty(ctx context.Context, record map[string]any) (*model.Property, error)
}

// ReservationAPI is the reservation operations the commands call.
type ReservationAPI interface {
	GetAllReservations(ctx context.Context, guestID, limit int) ([]model.Reservation, error)
}

// deps is shared by every command. Config and logging are set up before
// any command runs; the pool only when a command calls connect.
type deps struct {
	out    io.Writer
	errOut io.Writer

	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
	txn           *newrelic.Transaction

	srv          *server.Server
	users        UserAPI
	properties   PropertyAPI
	reservations ReservationAPI
}

// setup loads config and logging unless already present, then starts a
// New Relic transaction named after the command.
func (d *deps) setup(cmd *cobra.Command) error {
	if d.cfg == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return setupError(fmt.Errorf("failed to load config: %w", err))
		}

		loggerService, err := logger.NewLoggerService(cfg.Observability)
		if err != nil {
			return setupError(err)
		}

		d.cfg = cfg
		d.loggerService = loggerService
		d.log = logger.NewLoggerWithService(cfg.Observability, loggerService, d.errOut)
	}

	d.txn = d.loggerService.GetApplication().StartTransaction(cmd.CommandPath())
	log := logger.WithTraceContext(d.log, d.txn).With().
		Str("request_id", uuid.NewString()).
		Str("command", cmd.CommandPath()).
		Logger()

	ctx := newrelic.NewContext(cmd.Context(), d.txn)
	cmd.SetContext(log.WithContext(ctx))
	return nil
}

// openServer opens the pool once.
func (d *deps) openServer(ctx context.Context) error {
	if d.srv != nil {
		return nil
	}

	srv, err := server.New(ctx, d.cfg, &d.log, d.loggerService)
	if err != nil {
		return errs.NewConnectionError(err)
	}
	d.srv = srv
	return nil
}

// setupError keeps configuration values rejected by validation as
// InvalidInput and reports every other setup failure as Internal, with the
// cause in the message since nothing has been logged yet.
func setupError(err error) error {
	if errs.KindOf(err) == errs.KindInvalidInput {
		return err
	}
	return errs.NewInternalError(err).WithMessage(err.Error())
}

// connect opens the pool and builds the services unless they are set.
func (d *deps) connect(ctx context.Context) error {
	if d.users != nil {
		return nil
	}

	if err := d.openServer(ctx); err != nil {
		return err
	}

	services, err := service.NewService(d.srv, repository.NewRepositories(d.srv))
	if err != nil {
		return err
	}

	d.users = services.Users
	d.properties = services.Properties
	d.reservations = services.Reservations
	return nil
}

func (d *deps) close(ctx context.Context, err error) {
	if err != nil {
		d.txn.NoticeError(err)
	}
	d.txn.End()

	if d.srv != nil {
		if shutdownErr := d.srv.Shutdown(ctx); shutdownErr != nil {
			d.log.Error().Err(shutdownErr).Msg("shutdown failed")
		}
		return
	}
	d.loggerService.Shutdown()
}

func (d *deps) print(v any) error {
	return utils.PrintJSON(d.out, v)
}

func newRootCommand(d *deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "lightbnb",
		Short:         "LightBnB data access from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return d.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errs.NewInvalidInputError(err.Error(), true, nil, nil).WithCause(err)
	})

	root.SetOut(d.out)
	root.SetErr(d.errOut)

	root.AddCommand(newMigrateCommand(d))
	root.AddCommand(newStatusCommand(d))
	root.AddCommand(newUsersCommand(d))
	root.AddCommand(newPropertiesCommand(d))
	root.AddCommand(newReservationsCommand(d))

	return root
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var appErr *errs.Error
	if !errors.As(err, &appErr) {
		// Cobra usage errors: unknown commands and bad positional args.
		return ExitInvalidInput
	}

	switch appErr.Kind {
	case errs.KindInvalidInput:
		return ExitInvalidInput
	case errs.KindNotFound:
		return ExitNotFound
	case errs.KindConstraintViolation:
		return ExitConstraintViolation
	case errs.KindConnection:
		return ExitConnection
	default:
		return ExitInternal
	}
}

// errorOutput is what a failed command prints on stderr.
type errorOutput struct {
	Error any `json:"error"`
}

func (d *deps) printError(err error) {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		_ = utils.PrintJSON(d.errOut, errorOutput{Error: appErr})
		return
	}
	_ = utils.PrintJSON(d.errOut, errorOutput{Error: map[string]string{"message": err.Error()}})
}

func run(ctx context.Context, d *deps, args []string) int {
	root := newRootCommand(d)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if d.cfg != nil {
		d.close(ctx, err)
	}
	if err != nil {
		d.printError(err)
	}
	return ExitCode(err)
}

// Execute runs the command line with args and returns the exit code.
func Execute(ctx context.Context, args []string) int {
	return run(ctx, &deps{out: os.Stdout, errOut: os.Stderr}, args)
}

func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, n := range names {
		if !cmd.Flags().Changed(n) {
			return errs.InvalidField(n, fmt.Sprintf("--%s is required", n))
		}
	}
	return nil
}
