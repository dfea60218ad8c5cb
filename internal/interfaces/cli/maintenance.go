package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
)

// NewFieldsCmd lists the allowed filter fields.  It needs no backend.
func NewFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "fields",
		Short:       "List the fields accepted by --where",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			fields := patent.FilterableFields()
			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, fields)
			}
			rows := make([][]any, len(fields))
			for i, f := range fields {
				d, _ := patent.LookupField(f)
				kind := d.Kind.String()
				if d.IsIdentifier() {
					kind = "identifier"
				}
				rows[i] = []any{f, kind}
			}
			printTable(cmd, []string{"Field", "Kind"}, rows)
			return nil
		},
	}
}

// NewCacheCmd groups cache maintenance.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:         "sweep",
		Short:       "Remove cache entries older than cache.max_age",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"startup_sweep": "false"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			removed, err := cliCtx.Env.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, map[string]any{"driver": cliCtx.Env.Cache.Name(), "removed": removed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: removed %d entries from %s cache\n", removed, cliCtx.Env.Cache.Name())
			return nil
		},
	})
	return cmd
}

//Personal.AI order the ending
