package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "fitrank"
	envPrefix = "FITRANK"
)

type Config struct {
	Profile         string              `mapstructure:"profile"`
	Weights         map[string]float64  `mapstructure:"weights"`
	HardGatePenalty float64             `mapstructure:"hard-gate-penalty"`
	Regions         map[string][]string `mapstructure:"regions"`
	Ranking         *RankingConfig      `mapstructure:"ranking"`
	ExcludeFile     string              `mapstructure:"exclude-file"`
	Exclude         *ExcludeConfig      `mapstructure:"exclude"`
	AI              *AIConfig           `mapstructure:"ai"`
	Serve           *ServeConfig        `mapstructure:"serve"`
}

type RankingConfig struct {
	MinScore     int  `mapstructure:"min-score"`
	Limit        int  `mapstructure:"limit"`
	Workers      int  `mapstructure:"workers"`
	ExcludeGated bool `mapstructure:"exclude-gated"`
}

type ExcludeConfig struct {
	Companies       []string `mapstructure:"companies"`
	ClosedStatuses  []string `mapstructure:"closed-statuses"`
	DisabledFilters []string `mapstructure:"disabled-filters"`
}

type AIConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider"`
	Instructions string        `mapstructure:"instructions"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fitrank scores a candidate against a pool of open positions and ranks the matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fitrank.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("profile", "general")
	viper.SetDefault("hard-gate-penalty", 20)
	viper.SetDefault("ranking.min-score", 0)
	viper.SetDefault("ranking.limit", 20)
	viper.SetDefault("ranking.workers", 0)
	viper.SetDefault("ranking.exclude-gated", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("serve.addr", ":8080")

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Ranking == nil {
		config.Ranking = &RankingConfig{}
	}
	if config.Exclude == nil {
		config.Exclude = &ExcludeConfig{}
	}
	if config.Serve == nil {
		config.Serve = &ServeConfig{}
	}

	return config, nil
}
