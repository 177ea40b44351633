package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/ranking"
)

const (
	app       = "duna"
	envPrefix = "DUNA"
)

type Config struct {
	Endpoint    string        `mapstructure:"endpoint" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent   string        `mapstructure:"user-agent"`
	Token       string        `mapstructure:"token" json:"-"`
	TokenFile   string        `mapstructure:"token-file"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=0,lte=64"`
	View        ViewConfig    `mapstructure:"view"`
}

// ViewConfig holds the initial sort key and score threshold of the
// candidate view.
type ViewConfig struct {
	Sort     string  `mapstructure:"sort" validate:"omitempty,oneof=similarity name rank"`
	MinScore float64 `mapstructure:"min-score" validate:"gte=0,lte=100"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "duna ranks candidate resumes against a job description using a remote analysis service",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	setDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is duna.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("endpoint", analyzer.DefaultEndpoint, "base URL of the analysis service")
	rootCmd.PersistentFlags().Duration("timeout", analyzer.DefaultTimeout, "timeout for a single request to the analysis service")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

func setDefaults() {
	viper.SetDefault("endpoint", analyzer.DefaultEndpoint)
	viper.SetDefault("timeout", analyzer.DefaultTimeout)
	viper.SetDefault("user-agent", "")
	viper.SetDefault("token", "")
	viper.SetDefault("token-file", "")
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("view.sort", string(ranking.BySimilarity))
	viper.SetDefault("view.min-score", 0)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	// A missing .env is normal, variables may come from the environment itself.
	_ = godotenv.Load()

	if err := readConfig(cfgFile); err != nil {
		log.Fatal(err)
	}
}

// readConfig loads an explicitly given config file or, failing that, an
// optional duna.yaml from the current directory.
func readConfig(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("reading config: %w", err)
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
