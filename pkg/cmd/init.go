package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type BuildInfo struct {
	Version string
}

type args struct {
	ConfigPath  string `mapstructure:"config"`
	LogLevel    string `mapstructure:"log_level"`
	Version     string
	TextFormat  bool `mapstructure:"log_text"`
	Interactive bool
}

type generateArgs struct {
	Generator string
	Format    string
	Count     int
}

// InitCommand initializes the root command of the CLI application with its subcommands and flags.
// It sets up the "traceid" command with the "serve", "generate" and "check" subcommands and binds
// the persistent flags to environment variables.
func InitCommand(build BuildInfo) cobra.Command {
	arg := args{
		Version: build.Version,
	}

	cmd := cobra.Command{
		Use:     "traceid",
		Short:   "Trace id middleware demo",
		Long:    "traceid attaches a correlation id to every HTTP request and optionally echoes it in a header.",
		Version: build.Version,
	}

	cmd.PersistentFlags().StringVar(&arg.ConfigPath, "config", "", "config path")
	cmd.PersistentFlags().StringVar(&arg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&arg.TextFormat, "log-text", true, "log in text format, otherwise JSON")

	cmd.AddCommand(initServeCommand(&arg))
	cmd.AddCommand(initGenerateCommand(&arg))
	cmd.AddCommand(initCheckCommand(&arg))

	for _, name := range []string{"config", "log_level", "log_text"} {
		if err := viper.BindEnv(name); err != nil {
			slog.Error("failed to bind env var", "name", name, "error", err)
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&arg); err != nil {
		slog.Error("failed to unmarshal env vars", "error", err)
	}

	return cmd
}

// initServeCommand initializes the "serve" command that runs the demo HTTP server and the metrics server.
func initServeCommand(arg *args) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long:  "Run the demo HTTP server with the trace id middleware and the metrics server using the specified configuration.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunServerCommand(cmd.Context(), arg)
		},
	}
}

// initGenerateCommand creates the "generate" command which prints identifiers produced by one of the
// built-in generators.
func initGenerateCommand(arg *args) *cobra.Command {
	gen := generateArgs{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate trace ids",
		Long:  "Generate trace ids with one of the built-in generators (uuid, uuidv7, xid, sonyflake).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunGenerateCommand(cmd.Context(), arg, &gen, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&gen.Generator, "generator", "uuid", "generator name (uuid, uuidv7, xid, sonyflake)")
	cmd.Flags().StringVar(&gen.Format, "format", "text", "output format (text, json, yaml)")
	cmd.Flags().IntVarP(&gen.Count, "count", "n", 1, "number of trace ids to generate")

	return cmd
}

// initCheckCommand creates the "check" command that verifies a running server attaches and echoes trace ids.
func initCheckCommand(arg *args) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the running server",
		Long:  "Send a request to the running demo server and verify the trace id header matches the id seen by the handler.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunHealthCheck(cmd.Context(), arg)
		},
	}
}
