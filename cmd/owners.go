package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/filter"
	"github.com/s0up4200/hubspot/owner"
)

var (
	includeInactive bool
	ownerFilter     string
	ownerEmails     []string
)

// ownersCmd groups owner lookups
var ownersCmd = &cobra.Command{
	Use:   "owners",
	Short: "Look up HubSpot owners",
}

var ownersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List owners",
	Long: `List all owners of the portal.

Use --filter with an expression (or the name of a filter from the config file)
to narrow the result, for example:

  hubspot owners list --filter 'isActive and endsWith(email, "@example.com")'`,
	Args: cobra.NoArgs,
	RunE: runOwnersList,
}

var ownersFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Find owners by email",
	Args:  cobra.NoArgs,
	RunE:  runOwnersFind,
}

var ownersGetCmd = &cobra.Command{
	Use:   "get OWNER_ID",
	Short: "Get a single owner",
	Args:  cobra.ExactArgs(1),
	RunE:  runOwnersGet,
}

func init() {
	rootCmd.AddCommand(ownersCmd)
	ownersCmd.AddCommand(ownersListCmd, ownersFindCmd, ownersGetCmd)

	ownersCmd.PersistentFlags().BoolVar(&includeInactive, "include-inactive", false, "include deactivated owners")
	ownersListCmd.Flags().StringVarP(&ownerFilter, "filter", "f", "", "filter expression or configured filter name")
	ownersFindCmd.Flags().StringSliceVarP(&ownerEmails, "email", "e", nil, "email address to look up (repeatable)")
	_ = ownersFindCmd.MarkFlagRequired("email")
}

func newOwnerService() (*owner.Service, error) {
	c, err := requireConnection()
	if err != nil {
		return nil, err
	}
	return owner.NewService(c, logger), nil
}

func runOwnersList(cmd *cobra.Command, args []string) error {
	svc, err := newOwnerService()
	if err != nil {
		return err
	}

	owners, err := svc.All(cmd.Context(), includeInactive)
	if err != nil {
		return err
	}

	records := ownerRecords(owners)
	if ownerFilter != "" {
		f, err := filter.Compile(cfg.FilterExpression(ownerFilter))
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		records = f.Apply(records)
		logger.Debug().
			Str("filter", f.Expression()).
			Int("matched", len(records)).
			Int("total", len(owners)).
			Msg("Filtered owners")
	}

	return newPrinter(cmd.OutOrStdout()).print(records, ownerTable(records))
}

func runOwnersFind(cmd *cobra.Command, args []string) error {
	svc, err := newOwnerService()
	if err != nil {
		return err
	}

	owners, err := svc.FindByEmails(cmd.Context(), ownerEmails, includeInactive)
	if err != nil {
		return err
	}

	records := ownerRecords(owners)
	return newPrinter(cmd.OutOrStdout()).print(records, ownerTable(records))
}

func runOwnersGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid owner id %q", args[0])
	}

	svc, err := newOwnerService()
	if err != nil {
		return err
	}

	o, err := svc.Find(cmd.Context(), id)
	if err != nil {
		return err
	}

	records := ownerRecords([]*owner.Owner{o})
	return newPrinter(cmd.OutOrStdout()).print(o.Properties, ownerTable(records))
}

func ownerRecords(owners []*owner.Owner) []filter.Record {
	records := make([]filter.Record, 0, len(owners))
	for _, o := range owners {
		if o.Properties == nil {
			records = append(records, filter.Record{"ownerId": o.OwnerID, "email": o.Email})
			continue
		}
		records = append(records, o.Properties)
	}
	return records
}

func ownerTable(records []filter.Record) *table {
	t := &table{headers: []string{"ID", "Email", "Name", "Type", "Active"}}
	for _, r := range records {
		name := strings.TrimSpace(field(r, "firstName") + " " + field(r, "lastName"))
		t.rows = append(t.rows, []string{
			field(r, "ownerId"),
			field(r, "email"),
			name,
			field(r, "type"),
			field(r, "isActive"),
		})
	}
	return t
}

// field renders a record value for table output.
func field(r filter.Record, key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
