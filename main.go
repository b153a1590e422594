package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DarkEnergyProcessor/honokamiku/internal/config"
	"github.com/DarkEnergyProcessor/honokamiku/internal/keystream"
	"github.com/DarkEnergyProcessor/honokamiku/internal/logging"
	"github.com/DarkEnergyProcessor/honokamiku/internal/streamcipher"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "honokamiku",
	Short: "Decrypt or encrypt Love Live! School Idol Festival asset files",
	RunE:  run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	// i/o
	rootCmd.Flags().StringP("input", "i", "", "path to the game file to process (required)")
	rootCmd.Flags().StringP("output", "o", "", "path to write the processed file to (required)")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")

	// keying
	rootCmd.Flags().StringP("basename", "b", "", "name to derive keys from (defaults to the input file's own basename)")
	rootCmd.Flags().String("region", "", "game region: w (EN/WW), j (JP), t (TW), c (CN), or x for a custom game file; empty auto-detects on decrypt")
	rootCmd.Flags().IntP("version", "v", 0, "keystream version 1-6 to encrypt with (0 defaults to 3); decrypt ignores it and auto-detects V2-V6 from the header")
	rootCmd.Flags().StringP("key-table", "k", "", "path to a 256-byte custom key table (region x only)")
	rootCmd.Flags().StringP("prefix", "p", "", "custom key prefix (region x only)")
	rootCmd.Flags().IntP("name-sum", "s", -1, "custom name sum override (region x only); -1 derives it from prefix")

	// mode
	rootCmd.Flags().BoolP("encrypt", "e", false, "encrypt instead of decrypt")
	rootCmd.Flags().BoolP("detect", "d", false, "detect the region/version only; don't write output")

	// other opts
	rootCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-output-dir", "", "directory to write log files (if set, logs are written to both stdout and file)")
	rootCmd.Flags().Bool("dry-run", false, "validate options and open the input, without processing it or writing output")

	viper.BindPFlag("input", rootCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("basename", rootCmd.Flags().Lookup("basename"))
	viper.BindPFlag("region", rootCmd.Flags().Lookup("region"))
	viper.BindPFlag("version", rootCmd.Flags().Lookup("version"))
	viper.BindPFlag("key_table_file", rootCmd.Flags().Lookup("key-table"))
	viper.BindPFlag("prefix", rootCmd.Flags().Lookup("prefix"))
	viper.BindPFlag("name_sum", rootCmd.Flags().Lookup("name-sum"))
	viper.BindPFlag("encrypt", rootCmd.Flags().Lookup("encrypt"))
	viper.BindPFlag("detect", rootCmd.Flags().Lookup("detect"))
	viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.Flags().Lookup("log-output-dir"))
	viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "honokamiku"))
		}
		viper.AddConfigPath("/etc/honokamiku")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("HONOKAMIKU")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// regionLetters maps the single-letter region flag to keystream.Region, the
// way honokamiku_program.c's map_letter_to_gamefile does.
var regionLetters = map[string]keystream.Region{
	"w": keystream.RegionEN,
	"j": keystream.RegionJP,
	"t": keystream.RegionTW,
	"c": keystream.RegionCN,
}

// resolveKeySource turns cfg's region/prefix/key-table-file settings into a
// streamcipher.KeySource, loading a custom key table from disk for region x.
func resolveKeySource(cfg *config.Config) (streamcipher.KeySource, error) {
	ks := streamcipher.KeySource{NameSum: cfg.NameSum}

	switch cfg.Region {
	case "":
		ks.Region = keystream.RegionUnknown
	case "x":
		ks.Region = keystream.RegionUnknown
		ks.Prefix = cfg.Prefix
		if ks.Prefix == "" {
			return ks, fmt.Errorf("region x requires --prefix")
		}
		if cfg.KeyTableFile != "" {
			f, err := os.Open(cfg.KeyTableFile)
			if err != nil {
				return ks, fmt.Errorf("opening key table: %w", err)
			}
			defer f.Close()
			table, err := keystream.LoadCustomKeyTable(f)
			if err != nil {
				return ks, fmt.Errorf("loading key table: %w", err)
			}
			ks.KeyTable = table
		}
	default:
		region, ok := regionLetters[cfg.Region]
		if !ok {
			return ks, fmt.Errorf("unknown region %q (want w, j, t, c or x)", cfg.Region)
		}
		ks.Region = region
	}

	return ks, nil
}

func resolveVersion(n int) (keystream.Version, error) {
	switch {
	case n == 0:
		return keystream.Auto, nil
	case n >= 1 && n <= 6:
		return keystream.Version(n), nil
	default:
		return keystream.VNone, fmt.Errorf("invalid version %d (want 1-6)", n)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}

	basename := cfg.Basename
	if basename == "" {
		basename = cfg.InputFile
	}

	ks, err := resolveKeySource(cfg)
	if err != nil {
		return fmt.Errorf("invalid keying options: %w", err)
	}

	in, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	proc := streamcipher.New(slog.Default())

	if cfg.Detect {
		result, err := proc.Detect(in, ks, basename)
		if err != nil {
			slog.Error("could not detect gamefile", "input", cfg.InputFile, "error", err)
			return nil
		}
		fmt.Printf("region=%s version=%s\n", result.Region, result.Version)
		return nil
	}

	if cfg.DryRun {
		slog.Info("dry run, not writing output", "input", cfg.InputFile)
		return nil
	}

	out, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if cfg.Encrypt {
		version, err := resolveVersion(cfg.Version)
		if err != nil {
			return err
		}
		if version == keystream.Auto {
			version = keystream.V3
		}
		if err := proc.Encrypt(in, out, ks, version, basename); err != nil {
			slog.Error("encryption failed", "input", cfg.InputFile, "error", err)
			return err
		}
		slog.Info("encrypted file", "input", cfg.InputFile, "output", cfg.OutputFile, "version", version)
		return nil
	}

	version, err := proc.Decrypt(in, out, ks, basename)
	if err != nil {
		slog.Error("decryption failed", "input", cfg.InputFile, "error", err)
		return err
	}
	slog.Info("decrypted file", "input", cfg.InputFile, "output", cfg.OutputFile, "version", version)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
