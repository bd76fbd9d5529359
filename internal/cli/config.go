package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/slip39/internal/config"
	"github.com/mrz1836/slip39/internal/output"
	"github.com/mrz1836/slip39/pkg/slip39err"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify slip39 configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.slip39/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.`,
	Example: `  slip39 config init
  slip39 config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current configuration settings.`,
	Example: `  slip39 config show
  slip39 config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.`,
	Example: `  slip39 config get splitter.iteration_exponent
  slip39 config get output.default_format
  slip39 config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.
The configuration file will be updated immediately.`,
	Example: `  slip39 config set splitter.iteration_exponent 2
  slip39 config set output.default_format json
  slip39 config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.GroupID = groupIDConfig
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return slip39err.New(slip39err.ConfigError,
			"configuration already exists at %s, use --force to overwrite", configPath)
	}

	// Ensure directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Create default config
	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	// Write config file
	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - splitter.iteration_exponent: PBKDF2 iteration exponent (0-31)")
	outln(w, "  - splitter.wordlist: path to a custom word list file")
	outln(w, "  - output.default_format: Output format (text/json)")
	outln(w, "  - logging.level: Log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	format := formatter.Format()

	if format == output.FormatJSON {
		return displayConfigJSON(w, cfg)
	}

	return displayConfigText(w, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := getConfigValue(cfg, path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	outln(w, value)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	value := args[1]

	// Validate the path exists
	if _, err := getConfigValue(cfg, path); err != nil {
		return err
	}

	// Load current config from file
	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		// If file doesn't exist, start with defaults
		currentCfg = config.Defaults()
	}

	// Update the value
	if err := setConfigValue(currentCfg, path, value); err != nil {
		return err
	}

	// Save updated config
	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Set %s = %s\n", path, value)

	return nil
}

// unknownConfigKey reports an unrecognized dot-notation configuration path.
func unknownConfigKey(path string) error {
	return slip39err.New(slip39err.ConfigError, "unknown configuration key %q", path)
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		if parts[0] == "home" {
			return c.Home, nil
		}
		return "", unknownConfigKey(path)
	case 2:
		switch parts[0] {
		case "splitter":
			return getSplitterValue(c, parts[1])
		case "security":
			return getSecurityValue(c, parts[1])
		case "output":
			return getOutputValue(c, parts[1])
		case "logging":
			return getLoggingValue(c, parts[1])
		default:
			return "", unknownConfigKey(path)
		}
	default:
		return "", unknownConfigKey(path)
	}
}

func getSplitterValue(c *config.Config, key string) (string, error) {
	switch key {
	case "iteration_exponent":
		return strconv.Itoa(c.Splitter.IterationExponent), nil
	case "default_group_count":
		return strconv.Itoa(c.Splitter.DefaultGroupCount), nil
	case "default_threshold":
		return strconv.Itoa(c.Splitter.DefaultThreshold), nil
	case "wordlist":
		return c.Splitter.Wordlist, nil
	default:
		return "", unknownConfigKey("splitter." + key)
	}
}

func getSecurityValue(c *config.Config, key string) (string, error) {
	switch key {
	case "memory_lock":
		return strconv.FormatBool(c.Security.MemoryLock), nil
	case "require_passphrase_confirm":
		return strconv.FormatBool(c.Security.RequirePassphraseConfirm), nil
	default:
		return "", unknownConfigKey("security." + key)
	}
}

func getOutputValue(c *config.Config, key string) (string, error) {
	switch key {
	case "default_format":
		return c.Output.DefaultFormat, nil
	case "verbose":
		return strconv.FormatBool(c.Output.Verbose), nil
	case "color":
		return c.Output.Color, nil
	default:
		return "", unknownConfigKey("output." + key)
	}
}

func getLoggingValue(c *config.Config, key string) (string, error) {
	switch key {
	case "level":
		return c.Logging.Level, nil
	case "file":
		return c.Logging.File, nil
	default:
		return "", unknownConfigKey("logging." + key)
	}
}

// setConfigValue sets a value in the config using dot notation.
func setConfigValue(c *config.Config, path, value string) error {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		if parts[0] == "home" {
			c.Home = value
			return nil
		}
		return unknownConfigKey(path)
	case 2:
		switch parts[0] {
		case "splitter":
			return setSplitterValue(c, parts[1], value)
		case "security":
			return setSecurityValue(c, parts[1], value)
		case "output":
			return setOutputValue(c, parts[1], value)
		case "logging":
			return setLoggingValue(c, parts[1], value)
		default:
			return unknownConfigKey(path)
		}
	default:
		return unknownConfigKey(path)
	}
}

func setSplitterValue(c *config.Config, key, value string) error {
	switch key {
	case "iteration_exponent":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 31 {
			return slip39err.New(slip39err.ConfigError, "iteration_exponent must be an integer in 0..31, got %q", value)
		}
		c.Splitter.IterationExponent = n
		return nil
	case "default_group_count":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return slip39err.New(slip39err.ConfigError, "default_group_count must be a positive integer, got %q", value)
		}
		c.Splitter.DefaultGroupCount = n
		return nil
	case "default_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return slip39err.New(slip39err.ConfigError, "default_threshold must be a positive integer, got %q", value)
		}
		c.Splitter.DefaultThreshold = n
		return nil
	case "wordlist":
		c.Splitter.Wordlist = value
		return nil
	default:
		return unknownConfigKey("splitter." + key)
	}
}

func setSecurityValue(c *config.Config, key, value string) error {
	switch key {
	case "memory_lock":
		c.Security.MemoryLock = value == "true"
		return nil
	case "require_passphrase_confirm":
		c.Security.RequirePassphraseConfirm = value == "true"
		return nil
	default:
		return unknownConfigKey("security." + key)
	}
}

func setOutputValue(c *config.Config, key, value string) error {
	switch key {
	case "default_format":
		if value != "text" && value != "json" && value != "auto" {
			return slip39err.New(slip39err.ConfigError, "invalid output format %q, expected text, json, or auto", value)
		}
		c.Output.DefaultFormat = value
		return nil
	case "verbose":
		c.Output.Verbose = value == "true"
		return nil
	case "color":
		if value != "auto" && value != "always" && value != "never" {
			return slip39err.New(slip39err.ConfigError, "invalid color mode %q, expected auto, always, or never", value)
		}
		c.Output.Color = value
		return nil
	default:
		return unknownConfigKey("output." + key)
	}
}

func setLoggingValue(c *config.Config, key, value string) error {
	switch key {
	case "level":
		validLevels := []string{"off", "error", "debug"}
		for _, l := range validLevels {
			if value == l {
				c.Logging.Level = value
				return nil
			}
		}
		return slip39err.New(slip39err.ConfigError, "invalid log level %q, expected off, error, or debug", value)
	case "file":
		c.Logging.File = value
		return nil
	default:
		return unknownConfigKey("logging." + key)
	}
}

// displayConfigText shows the config in text format.
func displayConfigText(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Splitter:")
	out(w, "    iteration_exponent: %d\n", c.Splitter.IterationExponent)
	out(w, "    default_group_count: %d\n", c.Splitter.DefaultGroupCount)
	out(w, "    default_threshold: %d\n", c.Splitter.DefaultThreshold)
	wordlist := c.Splitter.Wordlist
	if wordlist == "" {
		wordlist = "(embedded)"
	}
	out(w, "    wordlist: %s\n", wordlist)
	outln(w)
	outln(w, "  Security:")
	out(w, "    memory_lock: %t\n", c.Security.MemoryLock)
	out(w, "    require_passphrase_confirm: %t\n", c.Security.RequirePassphraseConfirm)
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)

	return nil
}

// displayConfigJSON shows the config in JSON format.
func displayConfigJSON(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	type configJSON struct {
		Version  int                   `json:"version"`
		Home     string                `json:"home"`
		Splitter config.SplitterConfig `json:"splitter"`
		Security config.SecurityConfig `json:"security"`
		Output   config.OutputConfig   `json:"output"`
		Logging  config.LoggingConfig  `json:"logging"`
	}

	outCfg := configJSON{
		Version:  c.Version,
		Home:     c.Home,
		Splitter: c.Splitter,
		Security: c.Security,
		Output:   c.Output,
		Logging:  c.Logging,
	}

	return writeJSON(w, outCfg)
}
