package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"photosafe/internal/app"
	"photosafe/internal/config"
	"photosafe/internal/crypto"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultPaths returns the base directory and config path for this user.
func defaultPaths() (baseDir, configPath string, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolving home directory: %w", err)
	}
	baseDir = filepath.Join(home, ".photosafe")
	return baseDir, filepath.Join(baseDir, "config.toml"), nil
}

// readPassphrase takes the passphrase from PHOTOSAFE_PASSPHRASE or prompts
// for it on the terminal.
func readPassphrase(prompt string) (string, error) {
	if pass := os.Getenv("PHOTOSAFE_PASSPHRASE"); pass != "" {
		return pass, nil
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(raw), nil
}

var rootCmd = &cobra.Command{
	Use:   "photosafe",
	Short: "Photo/video backup and preview service",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, configPath, err := defaultPaths()
		if err != nil {
			return err
		}

		cfg := config.NewConfig(baseDir)
		if err := config.Init(configPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", configPath)
		fmt.Printf("Browse root: %s\n", cfg.BrowseRoot)
		fmt.Printf("State path:  %s\n", cfg.StatePath)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, configPath, err := defaultPaths()
		if err != nil {
			return err
		}

		cfg, err := config.ReadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", configPath)
		fmt.Printf("Listen addr: %s\n", cfg.ListenAddr)
		fmt.Printf("Browse root: %s\n", cfg.BrowseRoot)
		fmt.Printf("State path:  %s\n", cfg.StatePath)
		fmt.Printf("Log dir:     %s\n", cfg.LogDir)
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the master key",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a passphrase-protected master key",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, configPath, err := defaultPaths()
		if err != nil {
			return err
		}

		cfg, err := config.ReadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if cfg.MasterKeyPath == "" {
			return fmt.Errorf("config has no master_key_path set")
		}

		passphrase, err := readPassphrase("Passphrase for new master key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := crypto.GenerateKeyFile(cfg.MasterKeyPath, passphrase); err != nil {
			return fmt.Errorf("generating master key: %w", err)
		}

		fmt.Printf("Master key written to %s\n", cfg.MasterKeyPath)
		fmt.Println("Keep the passphrase safe; encrypted backups are unrecoverable without it.")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backup/preview HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, configPath, err := defaultPaths()
		if err != nil {
			return err
		}

		cfg, err := config.ReadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		passphrase := ""
		if cfg.MasterKeyHex == "" {
			passphrase, err = readPassphrase("Master key passphrase: ")
			if err != nil {
				return err
			}
		}

		a, err := app.New(cfg, passphrase)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		return a.ListenAndServe()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	keysCmd.AddCommand(keysInitCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(serveCmd)
}
