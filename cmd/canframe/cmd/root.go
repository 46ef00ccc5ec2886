package cmd

import (
	"context"
	"os"

	"github.com/aldas/go-canframe/pgns"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "canframe",
	Short:        "NMEA 2000 / J1939 CAN frame decoder",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

const (
	flagPGNs  = "pgns"
	flagJSON  = "json"
	flagStdin = "stdin"
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPGNs, "p", "", "path to PGN schema file (JSON or YAML). Built-in definitions are used when not set")
	pf.BoolP(flagJSON, "j", false, "print decoded output as JSON")
}

func loadRegistry(cmd *cobra.Command) (*pgns.Registry, error) {
	path, err := cmd.Flags().GetString(flagPGNs)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return pgns.DefaultRegistry(), nil
	}
	schema, err := pgns.LoadSchema(os.DirFS("."), path)
	if err != nil {
		return nil, err
	}
	return schema.Registry()
}
