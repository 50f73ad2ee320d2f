package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/hubspot"
)

var (
	urlParams   []string
	urlNoAPIKey bool
	urlShowKey  bool
	urlBaseURL  string
)

var urlCmd = &cobra.Command{
	Use:   "url TEMPLATE",
	Short: "Print the URL a request would use without sending it",
	Long: `Build the request URL for a path template and parameters. Nothing is sent.

  hubspot url /owners/v2/owners --param includeInactive=false
  hubspot url /email/public/v1/events --param time_range=2024-01-01T00:00:00Z..2024-02-01T00:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().StringArrayVarP(&urlParams, "param", "p", nil, "parameter as key=value, ranges as key=begin..end (repeatable)")
	urlCmd.Flags().BoolVar(&urlNoAPIKey, "no-api-key", false, "omit the hapikey parameter")
	urlCmd.Flags().BoolVar(&urlShowKey, "show-key", false, "print the API key instead of redacting it")
	urlCmd.Flags().StringVar(&urlBaseURL, "base-url", "", "override the base URL")
}

func runURL(cmd *cobra.Command, args []string) error {
	c, err := requireConnection()
	if err != nil {
		return err
	}

	params, err := parseParams(urlParams)
	if err != nil {
		return err
	}

	u, err := c.BuildURL(args[0], params, hubspot.BuildOptions{
		BaseURL:           urlBaseURL,
		DisableAPIKeyAuth: urlNoAPIKey,
	})
	if err != nil {
		return err
	}

	if !urlShowKey {
		u = hubspot.RedactURL(u)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
	return err
}
