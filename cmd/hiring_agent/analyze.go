package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/config"
	"github.com/jonathan/hiring-agent/internal/db"
	"github.com/jonathan/hiring-agent/internal/ingestion"
	"github.com/jonathan/hiring-agent/internal/logger"
	"github.com/jonathan/hiring-agent/internal/observability"
	"github.com/jonathan/hiring-agent/internal/ontology"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/schemas"
	"github.com/jonathan/hiring-agent/internal/semantic"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate and rank resumes against a job description",
	Long: `Loads a job description and resumes, builds an evaluation session, scores every candidate on five factors and writes ranked, explainable reports.

The job description is auto-detected among the documents in --data-dir, or supplied explicitly via --jd or --jd-url. Configuration can be loaded from a JSON file using --config; command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath  string
	analyzeDataDir     string
	analyzeJD          string
	analyzeJDURL       string
	analyzeResumeURLs  []string
	analyzeThreshold   float64
	analyzeLanguage    string
	analyzeWorkers     int
	analyzeOutputDir   string
	analyzeSnapshotDir string
	analyzeDatabaseURL string
	analyzeVerbose     bool
	analyzeJSONLogs    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeDataDir, "data-dir", "d", "", "Directory holding the job description and resumes (.txt, .md, .pdf)")
	analyzeCmd.Flags().StringVar(&analyzeJD, "jd", "", "Path to the job description file (otherwise auto-detected in --data-dir)")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL to fetch the job description from (mutually exclusive with --jd)")
	analyzeCmd.Flags().StringSliceVar(&analyzeResumeURLs, "resume-url", nil, "URL to fetch a candidate profile from (repeatable)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "Semantic match threshold (0-1)")
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Required programming language")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent resume evaluations")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "Directory for report files")
	analyzeCmd.Flags().StringVar(&analyzeSnapshotDir, "snapshot-dir", "", "Directory for session snapshots (optional)")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed evaluation output")
	analyzeCmd.Flags().BoolVar(&analyzeJSONLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("--data-dir is required (or data_dir in the config file)")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	embedder := semantic.NewOllamaEmbedder(cfg.EmbedderURL, cfg.EmbeddingModel)
	if err := embedder.Ping(ctx); err != nil {
		return fmt.Errorf("embedding backend not reachable at %s: %w", cfg.EmbedderURL, err)
	}

	jdName, jdText, resumes, err := collectInputs(ctx, cfg.DataDir)
	if err != nil {
		return err
	}

	log.Info("building session",
		zap.String("jd", jdName),
		zap.Int("resumes", len(resumes)),
		zap.Float64("threshold", cfg.Threshold))

	session, err := pipeline.BuildSession(ctx, embedder, jdName, jdText, cfg.Threshold, cfg.RequiredLanguage)
	if err != nil {
		return err
	}

	store := pipeline.NewStore(cfg.SnapshotDir)
	if err := store.Put(session); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintSession(session)
	}

	result, err := pipeline.EvaluateSession(ctx, session, resumes, pipeline.Options{
		Embedder: embedder,
		Workers:  cfg.Workers,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.RankingReport)
	if cfg.Verbose {
		for _, candidate := range result.Results {
			printer.PrintCandidate(candidate)
		}
	}
	printer.PrintSkipped(result.Skipped)
	printer.PrintSummary(result.Summary)

	if err := writeReports(cfg.OutputDir, result); err != nil {
		return err
	}

	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL != "" {
		if err := validateResult(result); err != nil {
			log.Warn("result failed schema validation, skipping persistence", zap.Error(err))
		} else if err := persistResult(ctx, databaseURL, session, result); err != nil {
			log.Warn("database persistence failed", zap.Error(err))
		}
	}

	return nil
}

// resolveConfig merges defaults, the optional config file and explicit
// CLI flags, in that order of precedence.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if analyzeConfigPath != "" {
		loaded, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = analyzeDataDir
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = analyzeThreshold
	}
	if cmd.Flags().Changed("language") {
		cfg.RequiredLanguage = analyzeLanguage
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = analyzeWorkers
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = analyzeOutputDir
	}
	if cmd.Flags().Changed("snapshot-dir") {
		cfg.SnapshotDir = analyzeSnapshotDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = analyzeJSONLogs
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// collectInputs loads all documents and separates the job description
// from the resumes. An explicit --jd or --jd-url wins; otherwise the
// first document classifying as a job description is used.
func collectInputs(ctx context.Context, dataDir string) (jdName, jdText string, resumes []pipeline.ResumeInput, err error) {
	docs, err := ingestion.LoadDir(dataDir)
	if err != nil {
		return "", "", nil, err
	}

	switch {
	case analyzeJD != "" && analyzeJDURL != "":
		return "", "", nil, fmt.Errorf("--jd and --jd-url are mutually exclusive")
	case analyzeJD != "":
		jdText, err = ingestion.LoadText(analyzeJD)
		if err != nil {
			return "", "", nil, err
		}
		jdName = ingestion.DisplayName(filepath.Base(analyzeJD))
	case analyzeJDURL != "":
		jdText, err = ingestion.LoadFromURL(ctx, analyzeJDURL)
		if err != nil {
			return "", "", nil, err
		}
		jdName = analyzeJDURL
	}

	for _, doc := range docs {
		if jdText == "" && ontology.IsJobDescription(doc.Text) {
			jdName = doc.Name
			jdText = doc.Text
			continue
		}
		if doc.Path == analyzeJD {
			continue
		}
		resumes = append(resumes, pipeline.ResumeInput{Name: doc.Name, Text: doc.Text})
	}

	for _, resumeURL := range analyzeResumeURLs {
		text, err := ingestion.LoadResumeFromURL(ctx, resumeURL)
		if err != nil {
			return "", "", nil, err
		}
		resumes = append(resumes, pipeline.ResumeInput{Name: resumeNameFromURL(resumeURL), Text: text})
	}

	if jdText == "" {
		return "", "", nil, &pipeline.NoJobDescriptionError{Dir: dataDir}
	}
	if len(resumes) == 0 {
		return "", "", nil, fmt.Errorf("no resumes found in %s", dataDir)
	}
	return jdName, jdText, resumes, nil
}

// resumeNameFromURL derives a candidate name from the last URL path
// segment, falling back to the URL itself.
func resumeNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return rawURL
	}
	return ingestion.DisplayName(path.Base(parsed.Path))
}

// writeReports writes the ranking and explanation artifacts.
func writeReports(outputDir string, result *pipeline.SessionResult) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rankingPath := filepath.Join(outputDir, "candidate_ranking.txt")
	if err := os.WriteFile(rankingPath, []byte(result.RankingReport), 0644); err != nil {
		return fmt.Errorf("failed to write ranking report: %w", err)
	}

	var xai []byte
	for _, candidate := range result.Results {
		xai = append(xai, candidate.XAIReport...)
	}
	xaiPath := filepath.Join(outputDir, "xai_explanations.txt")
	if err := os.WriteFile(xaiPath, xai, 0644); err != nil {
		return fmt.Errorf("failed to write explanations: %w", err)
	}

	fmt.Printf("Reports written to %s and %s\n", rankingPath, xaiPath)
	return nil
}

// validateResult checks the marshaled result against the session result
// schema. No-op when the schema file cannot be located.
func validateResult(result *pipeline.SessionResult) error {
	schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", "session_result.schema.json"))
	if schemaPath == "" {
		return nil
	}

	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return schemas.ValidateJSONString(string(schemaContent), string(data))
}

// persistResult stores the session and per-candidate outcomes.
func persistResult(ctx context.Context, databaseURL string, session *pipeline.Session, result *pipeline.SessionResult) error {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.CreateSession(ctx, db.SessionRecord{
		ID:               session.ID,
		JDName:           session.JDName,
		Requirements:     session.Requirements,
		Threshold:        session.Threshold,
		RequiredLanguage: session.RequiredLanguage,
		CreatedAt:        session.CreatedAt,
	}); err != nil {
		return err
	}

	for _, candidate := range result.Results {
		if err := database.SaveResult(ctx, db.ResultRecord{
			SessionID:      session.ID,
			CandidateName:  candidate.Name,
			Scores:         candidate.Scores,
			Action:         candidate.Action.Tag(),
			CompositeScore: candidate.CompositeScore,
			Rank:           candidate.Rank,
			Tier:           candidate.Tier,
			Explanation:    candidate.Explanation,
			XAIReport:      candidate.XAIReport,
		}); err != nil {
			return err
		}
	}
	return nil
}
