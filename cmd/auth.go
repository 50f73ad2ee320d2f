package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored credentials",
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key [API_KEY]",
	Short: "Store an API key in the OS keyring",
	Long: `Store the hapikey in the OS keyring. It is used whenever no key is
configured and OAuth2 is disabled. Without an argument the key is read from stdin.`,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Args:        cobra.MaximumNArgs(1),
	RunE:        runAuthSetKey,
}

var authClearCmd = &cobra.Command{
	Use:         "clear",
	Short:       "Remove the stored API key",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeleteAPIKey(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keyring")
		return err
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which authentication mode is in effect",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetKeyCmd, authClearCmd, authStatusCmd)
}

func runAuthSetKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if err := config.SaveAPIKey(key); err != nil {
		return err
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key stored in keyring")
	return err
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	c, err := requireConnection()
	if err != nil {
		return err
	}

	clientCfg := c.Config()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Mode:      %s\n", clientCfg.AuthMode())
	fmt.Fprintf(out, "Base URL:  %s\n", clientCfg.BaseURL)
	if clientCfg.PortalID != "" {
		fmt.Fprintf(out, "Portal ID: %s\n", clientCfg.PortalID)
	}

	if err := clientCfg.Validate(); err != nil {
		fmt.Fprintf(out, "Problem:   %v\n", err)
	}
	return nil
}
