package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/casewise/intake/internal/model"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Intake - scripted birth-injury case screening interviews",
	Long: `Intake runs scripted multi-turn screening interviews for potential
birth-injury legal cases.

It walks a family through an ordered set of questions, interprets free-text
answers (with an optional language-model assist), scores the case against a
points ladder, and checks eligibility against state-specific rules.

Intake screens and ranks; a human representative always makes the final call.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Intake.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("intake v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.intake/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.intake")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match INTAKE_*
	viper.SetEnvPrefix("INTAKE")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	setString := func(dst *string, key string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	setString(&cfg.CriteriaFile, "criteria_file")
	setString(&cfg.Oracle.Provider, "oracle.provider")
	setString(&cfg.Oracle.Model, "oracle.model")
	setString(&cfg.Oracle.APIKey, "oracle.api_key")
	setString(&cfg.Oracle.BaseURL, "oracle.base_url")
	setString(&cfg.Webhook.ListenAddr, "webhook.listen_addr")
	setString(&cfg.Webhook.VerifyToken, "webhook.verify_token")
	setString(&cfg.Webhook.AppSecret, "webhook.app_secret")
	setString(&cfg.Webhook.PageToken, "webhook.page_token")
	setString(&cfg.Webhook.GraphURL, "webhook.graph_url")
	setString(&cfg.Store.DataDir, "store.data_dir")

	if viper.IsSet("oracle.timeout") {
		cfg.Oracle.Timeout = viper.GetDuration("oracle.timeout")
	}
	if viper.IsSet("oracle.max_retries") {
		cfg.Oracle.MaxRetries = viper.GetInt("oracle.max_retries")
	}
	if viper.IsSet("webhook.send_rate") {
		cfg.Webhook.SendRate = viper.GetFloat64("webhook.send_rate")
	}
	if viper.IsSet("webhook.send_burst") {
		cfg.Webhook.SendBurst = viper.GetInt("webhook.send_burst")
	}
	if viper.IsSet("session.idle_timeout") {
		cfg.Session.IdleTimeout = viper.GetDuration("session.idle_timeout")
	}

	// Provider API keys come from the conventional environment variables.
	if cfg.Oracle.APIKey == "" {
		switch cfg.Oracle.Provider {
		case "openai":
			cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.Oracle.BaseURL = baseURL
			}
		}
	}

	if cfg.Session.IdleTimeout <= 0 {
		cfg.Session.IdleTimeout = 30 * time.Minute
	}
	return cfg
}
