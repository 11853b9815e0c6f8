package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Intake configuration",
	Long: `Manage Intake configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (INTAKE_*)
3. Config file (~/.intake/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration including all sources (defaults, config file, env vars, flags).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		// Secrets stay out of the printout
		display := *cfg
		if display.Oracle.APIKey != "" {
			display.Oracle.APIKey = "(set)"
		}
		if display.Webhook.AppSecret != "" {
			display.Webhook.AppSecret = "(set)"
		}
		if display.Webhook.PageToken != "" {
			display.Webhook.PageToken = "(set)"
		}

		yamlData, err := yaml.Marshal(display)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (INTAKE_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
		fmt.Println("  3. Config file (~/.intake/config.yaml)")
		fmt.Println("  4. Defaults")

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.intake/config.yaml with all available options documented.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.intake"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}

		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0o644); err != nil {
			return fmt.Errorf("error writing config file: %w", err)
		}

		fmt.Printf("Created config file: %s\n", configPath)
		return nil
	},
}

const defaultConfigYAML = `# Intake configuration

# Path to the state eligibility rules
criteria_file: criteria.yaml

oracle:
  # Language-model interpretation assist: openai, anthropic, ollama,
  # or empty to rely on deterministic interpretation only.
  provider: ""
  model: ""
  # api_key is usually supplied via OPENAI_API_KEY / ANTHROPIC_API_KEY
  api_key: ""
  base_url: ""
  timeout: 10s
  max_retries: 3

webhook:
  listen_addr: ":8080"
  verify_token: ""
  app_secret: ""
  page_token: ""
  graph_url: "https://graph.facebook.com/v22.0/me/messages"
  send_rate: 5
  send_burst: 5

store:
  data_dir: data

session:
  idle_timeout: 30m
  cleanup_interval: 5m
`

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
