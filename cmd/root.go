package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/config"
	"github.com/s0up4200/hubspot/hubspot"
)

const skipConfigAnnotation = "skip-config"

var (
	cfgFile      string
	outputFormat string
	jqExpr       string

	cfg     *config.Config
	logger  zerolog.Logger
	conn    *hubspot.Connection
	logFile *os.File

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hubspot",
	Short: "A command line client for the HubSpot CRM API",
	Long: `hubspot builds authenticated requests against the HubSpot CRM API.

It reads owners, deal pipelines and blog topics, submits forms and can send
arbitrary requests against any endpoint using path templates such as
/owners/v2/owners/:owner_id.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
}

// SetVersion records build information reported by the version and update commands.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// run executes the command tree and closes the log file even when the
// command failed, since cobra skips post-run hooks on error.
func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeApp(rootCmd, nil); err == nil {
		err = closeErr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&jqExpr, "jq", "", "jq expression applied to JSON output")
}

// initializeApp loads configuration and builds the shared connection
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if outputFormat != "" {
		if outputFormat != "table" && outputFormat != "json" {
			return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}

	logger, logFile, err = setupLogger(cfg.Logging)
	if err != nil {
		return err
	}

	if err := cfg.ResolveCredentials(); err != nil {
		logger.Warn().Err(err).Msg("Could not read API key from keyring")
	}

	clientCfg := cfg.ClientConfig(&logger)
	opts := []hubspot.Option{hubspot.WithUserAgent("hubspot-cli/" + version)}
	if cfg.HubSpot.Timeout > 0 {
		opts = append(opts, hubspot.WithTimeout(cfg.HubSpot.Timeout))
	}
	conn = hubspot.NewConnection(clientCfg, opts...)

	logger.Debug().
		Str("auth", clientCfg.AuthMode().String()).
		Str("base_url", conn.Config().BaseURL).
		Msg("Connection configured")

	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) (zerolog.Logger, *os.File, error) {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var out io.Writer
	if cfg.Format == "json" {
		out = os.Stderr
	} else {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !stderrIsTerminal(),
		}
	}

	var file *os.File
	if cfg.File != "" {
		var err error
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	return zerolog.New(out).With().Timestamp().Logger(), file, nil
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// exitCode maps error kinds to distinct process exit codes.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	switch hubspot.KindOf(err) {
	case hubspot.KindConfiguration, hubspot.KindMissingInterpolation, hubspot.KindInvalidParameter:
		return 2
	case hubspot.KindAuthentication:
		return 3
	case hubspot.KindRequest, hubspot.KindAPI:
		return 4
	default:
		return 1
	}
}

// requireConnection returns the connection or an error when the command ran
// without configuration.
func requireConnection() (*hubspot.Connection, error) {
	if conn == nil {
		return nil, fmt.Errorf("connection not initialized")
	}
	return conn, nil
}
