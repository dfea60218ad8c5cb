package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-PatentClient/internal/application/query"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

var defaultColumns = []string{"appl_id", "patent_number", "app_filing_date", "app_status", "patent_title"}

// queryFlags are shared by the commands that build a QuerySet.
type queryFlags struct {
	where   []string
	orderBy []string
	limit   int
	offset  int
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.where, "where", "w", nil, "criterion as field=value; identifier fields accept a comma list; repeatable")
	cmd.Flags().StringSliceVar(&f.orderBy, "order-by", nil, "ordering fields, '-' prefix for descending")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum records (0 = all)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "records to skip")
}

// parseWhere turns "field=value" expressions into Criteria.  A field given
// more than once accumulates values; see query.SplitValues for commas.
func parseWhere(exprs []string) (query.Criteria, error) {
	c := query.Criteria{}
	for _, expr := range exprs {
		field, raw, ok := strings.Cut(expr, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, errors.Validation("criterion must be field=value").WithDetail(expr)
		}
		c[field] = append(c[field], query.SplitValues(field, raw)...)
		if len(c[field]) == 0 {
			return nil, errors.Validation("criterion has no values").WithDetail(expr)
		}
	}
	return c, nil
}

func (f *queryFlags) build(cliCtx *CLIContext) (*query.QuerySet, error) {
	criteria, err := parseWhere(f.where)
	if err != nil {
		return nil, err
	}
	qs, err := cliCtx.Env.Query.Filter(criteria)
	if err != nil {
		return nil, err
	}
	if len(f.orderBy) > 0 {
		if qs, err = qs.OrderBy(f.orderBy...); err != nil {
			return nil, err
		}
	}
	if cliCtx.ForceXML {
		qs = qs.SetOptions(query.WithForceXML(true))
	}
	return qs.Offset(f.offset).Limit(f.limit), nil
}

// warnPartial reports identifiers that did not resolve.  The error is
// still returned to the caller so the exit status is non-zero.
func warnPartial(cmd *cobra.Command, cliCtx *CLIContext, err error) {
	var partial *query.PartialResolutionError
	if stderrors.As(err, &partial) {
		cliCtx.Logger.Warn("partial resolution", logging.Strings("failed", partial.Failed))
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d identifier(s) could not be resolved: %s\n",
			len(partial.Failed), strings.Join(partial.Failed, ", "))
	}
}

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	var where []string
	cmd := &cobra.Command{
		Use:   "get [APPL_ID]",
		Short: "Fetch exactly one application",
		Example: "  keyip get 14095073\n" +
			"  keyip get --where patent_number=9402813",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			criteria, err := parseWhere(where)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				criteria[string(patent.ClassApplication)] = append(criteria[string(patent.ClassApplication)], args[0])
			}
			if len(criteria) == 0 {
				return errors.Validation("get needs an application number or --where")
			}
			qs := cliCtx.Env.Query.Query()
			if cliCtx.ForceXML {
				qs = qs.SetOptions(query.WithForceXML(true))
			}
			app, err := qs.GetBy(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, app.AsDict())
			}
			printDict(cmd, app.AsDict())
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "criterion as field=value; repeatable")
	return cmd
}

// NewFilterCmd creates the filter command.
func NewFilterCmd() *cobra.Command {
	var (
		qf      queryFlags
		columns []string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List applications matching criteria",
		Example: "  keyip filter -w appl_id=14095073,15384723 -w patent_number=9402813\n" +
			"  keyip filter -w app_early_pub_number=US20160018212A1 --order-by -app_filing_date",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			qs, err := qf.build(cliCtx)
			if err != nil {
				return err
			}
			for _, c := range columns {
				if _, ok := patent.LookupField(c); !ok {
					return errors.New(errors.ErrCodeUnknownFilterField, "unknown column").WithDetail(c)
				}
			}
			apps, resErr := qs.All(cmd.Context())
			if resErr != nil && !errors.IsPartialResolution(resErr) {
				return resErr
			}

			if cliCtx.OutputFormat == "json" {
				out := make([]map[string]any, len(apps))
				for i, a := range apps {
					out[i] = a.AsDict()
				}
				if err := printJSON(cmd, out); err != nil {
					return err
				}
			} else {
				rows := make([][]any, len(apps))
				for i, a := range apps {
					row := make([]any, len(columns))
					for j, c := range columns {
						row[j], _ = a.Value(c)
					}
					rows[i] = row
				}
				printTable(cmd, columns, rows)
			}
			warnPartial(cmd, cliCtx, resErr)
			return resErr
		},
	}
	qf.register(cmd)
	cmd.Flags().StringSliceVar(&columns, "columns", defaultColumns, "table columns")
	return cmd
}

// NewValuesCmd creates the values command.
func NewValuesCmd() *cobra.Command {
	var (
		qf   queryFlags
		flat bool
	)
	cmd := &cobra.Command{
		Use:     "values FIELD...",
		Short:   "Project fields of the matching applications",
		Example: "  keyip values appl_id patent_title -w app_early_pub_number=US20160018212A1",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if flat && len(args) != 1 {
				return errors.Validation("--flat takes exactly one field")
			}
			qs, err := qf.build(cliCtx)
			if err != nil {
				return err
			}

			if flat {
				vals, resErr := qs.FlatValues(cmd.Context(), args[0])
				if resErr != nil && !errors.IsPartialResolution(resErr) {
					return resErr
				}
				if cliCtx.OutputFormat == "json" {
					if err := printJSON(cmd, vals); err != nil {
						return err
					}
				} else {
					for _, v := range vals {
						fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
					}
				}
				warnPartial(cmd, cliCtx, resErr)
				return resErr
			}

			rows, resErr := qs.ValuesList(cmd.Context(), args...)
			if resErr != nil && !errors.IsPartialResolution(resErr) {
				return resErr
			}
			if cliCtx.OutputFormat == "json" {
				if err := printJSON(cmd, rows); err != nil {
					return err
				}
			} else {
				printTable(cmd, args, rows)
			}
			warnPartial(cmd, cliCtx, resErr)
			return resErr
		},
	}
	qf.register(cmd)
	cmd.Flags().BoolVar(&flat, "flat", false, "print a single field as a flat list")
	return cmd
}

//Personal.AI order the ending
