package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/echo"
	"github.com/aretw0/echo/pkg/core"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	vaultPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "echo",
	Short: "A personal note store with folders, tags, search and debounced auto-save",
	Long: `Echo keeps your notes in a single durable JSON snapshot.
Notes carry a title, markdown content, tags, and a folder label;
the collection is searchable and every mutation is persisted before
the command returns.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault directory (defaults to ECHO_VAULT or the current directory)")
}

// resolveVault picks the vault directory: --vault flag, ECHO_VAULT,
// then the nearest root indicator above the working directory.
func resolveVault() (string, error) {
	if vaultPath != "" {
		return vaultPath, nil
	}
	if env := os.Getenv("ECHO_VAULT"); env != "" {
		return env, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := echo.FindVaultRoot(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// openStore resolves the vault, loads its config, and opens the store.
func openStore(mustExist bool) (*core.Store, fileConfig, error) {
	vault, err := resolveVault()
	if err != nil {
		return nil, fileConfig{}, err
	}

	cfg := loadConfig(vault)

	store, err := echo.New(vault,
		echo.WithLogger(slog.Default()),
		echo.WithMustExist(mustExist),
		echo.WithSlotFile(cfg.SlotFile),
		echo.WithDefaultFolder(cfg.DefaultFolder),
		echo.WithEventBuffer(cfg.EventBuffer),
	)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}
