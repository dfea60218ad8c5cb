package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-PatentClient/internal/application/query"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

var expirationColumns = []string{
	"appl_id", "parent_appl_id", "parent_app_filing_date", "parent_relationship",
	"20_year_term", "pta_or_pte", "extended_term", "terminal_disclaimer_filed",
}

// NewExpirationCmd creates the expiration command.
func NewExpirationCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "expiration APPL_ID...",
		Short:   "Compute the statutory term and expiration of applications",
		Long:    "Computes the 20-year term from the earliest qualifying parent filing,\nextended by PTA/PTE days.  A terminal disclaimer is reported, not applied.",
		Example: "  keyip expiration 15384723 14865625",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			qs, err := cliCtx.Env.Query.FilterBy(string(patent.ClassApplication), args...)
			if err != nil {
				return err
			}
			if cliCtx.ForceXML {
				qs = qs.SetOptions(query.WithForceXML(true))
			}
			apps, resErr := qs.All(cmd.Context())
			if resErr != nil && !errors.IsPartialResolution(resErr) {
				return resErr
			}

			var (
				dicts   []map[string]any
				rows    [][]any
				termErr error
			)
			for _, app := range apps {
				exp, err := cliCtx.Env.Terms.Compute(cmd.Context(), app)
				if err != nil {
					PrintError(cmd, errors.Wrap(err, errors.CodeUnknown, "expiration failed").WithDetail(app.ApplID))
					if termErr == nil {
						termErr = err
					}
					continue
				}
				d := exp.AsDict()
				d["appl_id"] = app.ApplID
				dicts = append(dicts, d)
				row := make([]any, len(expirationColumns))
				for i, c := range expirationColumns {
					row[i] = d[c]
				}
				rows = append(rows, row)
			}

			if cliCtx.OutputFormat == "json" {
				if err := printJSON(cmd, dicts); err != nil {
					return err
				}
			} else {
				printTable(cmd, expirationColumns, rows)
			}
			warnPartial(cmd, cliCtx, resErr)
			if resErr != nil {
				return resErr
			}
			return termErr
		},
	}
}

//Personal.AI order the ending
