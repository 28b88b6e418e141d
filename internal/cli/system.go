package cli

import (
	"time"

	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/spf13/cobra"
)

func newMigrateCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the LightBnB schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := database.Migrate(cmd.Context(), &d.log, database.DSN(d.cfg.Database))
			return sqlerr.HandleError(err)
		},
	}
}

type statusOutput struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Environment   string    `json:"environment"`
	Database      string    `json:"database"`
	Latency       string    `json:"latency"`
	SchemaVersion int32     `json:"schema_version"`
	LatestVersion int32     `json:"latest_version"`
	TotalConns    int32     `json:"total_conns"`
	IdleConns     int32     `json:"idle_conns"`
}

func newStatusCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check database connectivity and schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := d.openServer(ctx); err != nil {
				return err
			}

			latency, err := d.srv.DB.Ping(ctx)
			if err != nil {
				return sqlerr.HandleError(err)
			}

			current, latest, err := database.SchemaVersion(ctx, database.DSN(d.cfg.Database))
			if err != nil {
				return sqlerr.HandleError(err)
			}

			stat := d.srv.DB.Stats()
			return d.print(statusOutput{
				Status:        "healthy",
				Timestamp:     time.Now().UTC(),
				Environment:   d.cfg.Primary.Env,
				Database:      d.cfg.Database.Name,
				Latency:       latency.Round(time.Microsecond).String(),
				SchemaVersion: current,
				LatestVersion: latest,
				TotalConns:    stat.TotalConns(),
				IdleConns:     stat.IdleConns(),
			})
		},
	}
}
