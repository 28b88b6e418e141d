package cli

import (
	"strings"

	"github.com/deppfellow/lightbnb/internal/query"
	"github.com/spf13/cobra"
)

func newPropertiesCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Search and create properties",
	}

	cmd.AddCommand(newPropertiesSearchCommand(d))
	cmd.AddCommand(newPropertiesAddCommand(d))
	return cmd
}

// namedFilters maps search flags onto filter keys.
var namedFilters = map[string]string{
	"city":                    query.FilterCity,
	"minimum-rating":          query.FilterMinimumRating,
	"maximum-price-per-night": query.FilterMaximumPricePerNight,
	"minimum-price-per-night": query.FilterMinimumPricePerNight,
	"owner-id":                query.FilterOwnerID,
}

func newPropertiesSearchCommand(d *deps) *cobra.Command {
	var (
		named   = make(map[string]*string, len(namedFilters))
		filters map[string]string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties, cheapest first",
		Long: "Search properties, cheapest first.\n\nSupported filters: " +
			strings.Join(query.SearchFilters(), ", ") + ".\nPrices are in whole currency units.",
		Example: `  lightbnb properties search --city van --minimum-rating 4
  lightbnb properties search --filter number_of_bedrooms=2 --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := make(map[string]string, len(filters)+len(named))
			for k, v := range filters {
				opts[k] = v
			}
			// Only flags given on the command line, so an explicit 0 counts.
			for flag, key := range namedFilters {
				if cmd.Flags().Changed(flag) {
					opts[key] = *named[flag]
				}
			}

			ctx := cmd.Context()
			if err := d.connect(ctx); err != nil {
				return err
			}

			properties, err := d.properties.GetAllProperties(ctx, opts, limit)
			if err != nil {
				return err
			}
			return d.print(properties)
		},
	}

	for flag, key := range namedFilters {
		named[flag] = cmd.Flags().String(flag, "", "filter on "+key)
	}
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "additional filter as key=value (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", query.DefaultLimit, "maximum number of properties")
	return cmd
}

func newPropertiesAddCommand(d *deps) *cobra.Command {
	var values map[string]string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a property from column=value pairs",
		Example: `  lightbnb properties add --set owner_id=1 --set title="Ocean view" \
    --set cost_per_night=15000 --set city=Vancouver`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := query.ParsePropertyRecord(values)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := d.connect(ctx); err != nil {
				return err
			}

			property, err := d.properties.AddProperty(ctx, record)
			if err != nil {
				return err
			}
			return d.print(property)
		},
	}

	cmd.Flags().StringToStringVar(&values, "set", nil, "property column as column=value (repeatable)")
	return cmd
}
