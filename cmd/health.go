package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis service is reachable",
	Run: func(cmd *cobra.Command, _ []string) {
		health(cmd)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func health(cmd *cobra.Command) {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer lg.Sync()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	client := analyzer.New(lg, analyzer.Options{
		Endpoint:  config.Endpoint,
		Timeout:   config.Timeout,
		UserAgent: config.UserAgent,
	})

	status, err := client.Health(context.Background())
	if err != nil {
		lg.Fatal(analyzer.ConnectivityMessage, zap.String(logger.FieldEndpoint, client.Endpoint), zap.Error(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status.Status, status.Message)
}
