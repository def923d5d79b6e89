package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/catena-ledger/txsetd/internal/config"
	"github.com/catena-ledger/txsetd/internal/core/pool"
	"github.com/catena-ledger/txsetd/internal/core/txset"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool
	quiet      bool

	// cfg is populated by initConfig when --conf names a loadable file. It is
	// nil otherwise; commands that need tuning knobs fall back to defaults.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "txsetd",
	Short: "txsetd - Transaction Set Frame tooling for a replicated-ledger network",
	Long: `txsetd exercises the consensus-critical Transaction Set Frame outside
of a running node: build a candidate set from a fixture, canonicalize and
hash it, apply surge pricing, trim invalid or insolvent transactions, and
produce the deterministic apply order a ledger close would use.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (transaction_queue tuning)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "no effect; txset diagnostics go to stderr unless --quiet is set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "no effect")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "discard txset diagnostic logging (command results are still printed)")
}

// initConfig loads the transaction_queue-equivalent tuning knobs from
// --conf, if given. A missing or unset --conf is not an error: commands
// fall back to the ledger/pool package defaults.
func initConfig() {
	if quiet {
		txset.SetDiagnosticsOutput(io.Discard)
	}
	if configFile == "" {
		return
	}
	loaded, err := config.LoadConfig(config.ConfigPaths{Main: configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", configFile, err)
		return
	}
	cfg = loaded
}

// poolConfig builds a pool.Config from the loaded [transaction_queue]
// section, falling back to pool.DefaultConfig when --conf was not given or
// failed to load.
func poolConfig() pool.Config {
	if cfg == nil {
		return pool.DefaultConfig()
	}
	return pool.FromTransactionQueueConfig(&cfg.TransactionQueue)
}
