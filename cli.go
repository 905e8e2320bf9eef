package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/muhammadolammi/resumecritic/internal/critique"
	"github.com/muhammadolammi/resumecritic/internal/database"
	"github.com/muhammadolammi/resumecritic/internal/report"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

// newRootCommand creates the resumecritic command tree
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumecritic",
		Short: "Heuristic resume critique",
		Long: `resumecritic scores resume prose for weak verbs, first-person pronouns,
passive voice, short length and missing numbers, and suggests fixes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newAnalyzeCommand(), newWorkerCommand())
	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Critique a local resume file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}

	cmd.Flags().StringP("file", "f", "", "Path to the resume to analyze")
	cmd.Flags().StringP("tab", "t", "all", "Issues to list: all, impact or style")
	cmd.Flags().StringP("format", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().Bool("parse-documents", false, "Extract real text from PDF and DOCX instead of simulating")
	cmd.Flags().Int64("seed", 0, "Seed for simulated text (0 picks a random seed)")
	cmd.Flags().Duration("delay", 0, "Pause before showing results")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	tabName, _ := cmd.Flags().GetString("tab")
	format, _ := cmd.Flags().GetString("format")
	parseDocuments, _ := cmd.Flags().GetBool("parse-documents")
	seed, _ := cmd.Flags().GetInt64("seed")
	delay, _ := cmd.Flags().GetDuration("delay")

	if filePath == "" && len(args) == 1 {
		filePath = args[0]
	}
	// nothing selected, nothing to do
	if filePath == "" {
		return nil
	}

	tab, err := report.ParseTab(tabName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	var rnd *rand.Rand
	if seed != 0 {
		rnd = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}

	text, err := IngestResume(DetectMime(filePath, data), data, IngestOptions{
		ParseDocuments: parseDocuments,
		Generator:      critique.NewGenerator(rnd),
	})
	if err != nil {
		return fmt.Errorf("failed to extract text from %s: %w", filePath, err)
	}

	res := critique.Analyze(text)

	if delay > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Analyzing...")
		time.Sleep(delay)
	}

	view := report.NewView(res, filepath.Base(filePath)).WithTab(tab)
	return report.Encode(cmd.OutOrStdout(), format, view)
}

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume critique sessions from RabbitMQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker()
		},
	}
}

func runWorker() error {
	env, err := LoadWorkerEnv()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", env.DBUrl)
	if err != nil {
		return fmt.Errorf("error opening db: %w", err)
	}
	defer db.Close()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(env.R2.AccessKey, env.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return fmt.Errorf("error creating aws config: %w", err)
	}

	conn, err := amqp.Dial(env.RabbitMQUrl)
	if err != nil {
		return fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	defer conn.Close()

	workerConfig := WorkerConfig{
		DB:              database.New(db),
		Download:        newR2Downloader(awsConfig, env.R2),
		RABBITMQUrl:     env.RabbitMQUrl,
		RabbitConn:      conn,
		ProcessingDelay: env.ProcessingDelay,
		Ingest: IngestOptions{
			ParseDocuments: env.ParseDocuments,
			Generator:      critique.NewGenerator(nil),
		},
	}

	if env.GoogleApiKey != "" {
		coachName := "resume coach"
		r, sessionService, err := newCoachRunner(env.GoogleApiKey, coachName)
		if err != nil {
			return fmt.Errorf("failed to create coach: %w", err)
		}
		workerConfig.CoachName = coachName
		workerConfig.CoachRunner = r
		workerConfig.CoachSessionService = sessionService
	} else {
		log.Println("GOOGLE_API_KEY not set, coaching disabled")
	}

	log.Printf("Starting %d workers consumer pool", env.WorkerCount)
	workerConfig.StartConsumerWorkerPool(env.WorkerCount)
	return nil
}
