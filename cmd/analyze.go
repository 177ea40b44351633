package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/document"
	"github.com/duna-ai/duna/internal/inputs"
	"github.com/duna-ai/duna/internal/logger"
	"github.com/duna-ai/duna/internal/ranking"
	"github.com/duna-ai/duna/internal/session"
)

const (
	PromptSortSimilarity = "Sort by match score"
	PromptSortName       = "Sort by file name"
	PromptSortRank       = "Sort by rank"
	PromptMinScore       = "Set minimum match score"
	PromptDetails        = "Show candidate details"
	PromptExport         = "Export to Excel"
	PromptDump           = "Dump candidates to file"
	PromptExit           = "Exit"
	PromptBack           = "back"

	defaultExportPath = "candidates.xlsx"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSortSimilarity, PromptSortName, PromptSortRank, PromptMinScore, PromptDetails, PromptExport, PromptDump, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume files...]",
	Short: "Rank resumes against a job description",
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("job-description", "", "job description text")
	analyzeCmd.Flags().String("job-file", "", "file with the job description, '-' reads stdin")
	analyzeCmd.Flags().String("sort", string(ranking.BySimilarity), "initial sort key: similarity, name or rank")
	analyzeCmd.Flags().Float64("min-score", 0, "hide candidates below this match score (0-100)")
	analyzeCmd.Flags().String("token-file", "", "file with a bearer token for the analysis service")
	analyzeCmd.Flags().Int("concurrency", 4, "how many resumes are read at once")
	analyzeCmd.Flags().String("export", "", "write the ranked candidates to this xlsx file")
	analyzeCmd.Flags().Bool("dump", false, "dump the ranked candidates to a temporary json file")
	analyzeCmd.Flags().BoolP("no-interactive", "y", false, "print the ranking once and exit")

	viper.BindPFlag("view.sort", analyzeCmd.Flags().Lookup("sort"))
	viper.BindPFlag("view.min-score", analyzeCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("token-file", analyzeCmd.Flags().Lookup("token-file"))
	viper.BindPFlag("concurrency", analyzeCmd.Flags().Lookup("concurrency"))
}

func analyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer lg.Sync()

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting duna", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	sortBy, err := ranking.ParseSortKey(config.View.Sort)
	if err != nil {
		lg.Fatal("parsing sort key", zap.Error(err))
	}

	jobFlag, _ := cmd.Flags().GetString("job-description")
	jobFile, _ := cmd.Flags().GetString("job-file")
	jobDescription, err := inputs.Optional(inputs.Source{Name: "job description", Value: jobFlag, File: jobFile})
	if err != nil {
		lg.Fatal("loading job description", zap.Error(err))
	}

	token, err := inputs.Optional(inputs.Source{Name: "service token", Value: config.Token, File: config.TokenFile})
	if err != nil {
		lg.Fatal(
			"loading service token",
			zap.Error(err),
			zap.String("hint", "set DUNA_TOKEN_FILE or the 'token-file' key in the configuration file"),
		)
	}

	files, err := collectFiles(args, lg)
	if err != nil {
		lg.Fatal("opening resumes", zap.Error(err))
	}

	client := analyzer.New(lg, analyzer.Options{
		Endpoint:  config.Endpoint,
		Timeout:   config.Timeout,
		Token:     token,
		UserAgent: config.UserAgent,
	})

	sessionLogger := logger.WithFields(lg, logger.StringFields(
		logger.StringField{Key: logger.FieldEndpoint, Value: client.Endpoint},
		logger.StringField{Key: logger.FieldUserAgent, Value: client.UserAgent},
	)...)

	composer := session.NewComposer(document.NewEncoder(lg, config.Concurrency))
	sess := session.New(client, composer, sessionLogger)

	lg.Info("submitting resumes",
		zap.Int("files", files.Len()),
		zap.Int64("bytes", files.TotalSize()),
	)

	state, err := sess.Submit(ctx, jobDescription, files.Files())
	if err != nil {
		lg.Fatal(state.Message, zap.Error(err))
	}

	v := &viewer{
		result:   state.Result,
		sortBy:   sortBy,
		minScore: config.View.MinScore,
		out:      cmd.OutOrStdout(),
		logger:   lg,
	}
	v.show()

	exportPath, _ := cmd.Flags().GetString("export")
	if exportPath != "" {
		if err := v.export(exportPath); err != nil {
			lg.Fatal("exporting candidates", zap.Error(err))
		}
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		if err := v.dump(); err != nil {
			lg.Fatal("dumping candidates", zap.Error(err))
		}
	}

	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		if err := v.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}
}
