package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prwarden/prwarden/internal/archive"
	"github.com/prwarden/prwarden/internal/config"
	"github.com/prwarden/prwarden/internal/metrics"
	"github.com/prwarden/prwarden/internal/provider"
	"github.com/prwarden/prwarden/internal/registry"
	"github.com/prwarden/prwarden/internal/report"
	"github.com/prwarden/prwarden/internal/validate"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to config file")
	envFile := flag.String("env-file", "", "Path to .env file (optional)")
	flag.Parse()

	// Load .env file if specified or exists
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Warning: could not load env file %s: %v", *envFile, err)
		}
	} else {
		godotenv.Load(".env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	prov, err := registry.Resolve(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve provider: %v", err)
	}

	ctx := context.Background()
	scanner := validate.NewScanner(prov, cfg)
	results, err := scanner.Scan(ctx)
	if err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	renderer := report.NewRenderer(true)
	if err := renderer.Write(os.Stdout, cfg.Repo.Owner, cfg.Repo.Name, cfg.Repo.Host, results); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	if cfg.Report.PostComments {
		postComments(ctx, prov, cfg, results)
	}

	archiveReport(cfg, results)

	m := metrics.Get()
	log.Printf("Validated %d PRs: %d passed, %d failed", m.PRsScanned, m.PRsPassed, m.PRsFailed)

	for i := range results {
		if !results[i].Passed() {
			os.Exit(1)
		}
	}
}

func defaultConfigPath() string {
	if path := os.Getenv("PRWARDEN_CONFIG"); path != "" {
		return path
	}
	return config.DefaultPath
}

// postComments posts the per-PR markdown report as a comment. Posting
// failures are logged and never change the exit code.
func postComments(ctx context.Context, prov provider.Provider, cfg *config.Config, results []validate.Result) {
	for i := range results {
		res := &results[i]
		if err := prov.PostComment(ctx, cfg.Repo.Owner, cfg.Repo.Name, res.Number, report.Comment(res)); err != nil {
			log.Printf("Failed to post comment on PR #%d: %v", res.Number, err)
			continue
		}
		metrics.CommentPosted()
		log.Printf("Comment posted on PR #%d", res.Number)
	}
}

// archiveReport saves an unstyled copy of the report and prunes old ones.
func archiveReport(cfg *config.Config, results []validate.Result) {
	writer := archive.NewWriter(cfg.Archive.Dir)
	if !writer.Enabled() {
		return
	}

	var b strings.Builder
	_ = report.NewRenderer(false).Write(&b, cfg.Repo.Owner, cfg.Repo.Name, cfg.Repo.Host, results)

	path, err := writer.Save(b.String(), time.Now())
	if err != nil {
		log.Printf("Failed to archive report: %v", err)
		return
	}
	log.Printf("Report archived to %s", path)

	deleted, err := archive.NewCleaner(cfg.Archive.Dir, cfg.Archive.RetentionDays).Clean()
	if err != nil {
		log.Printf("Archive cleanup error: %v", err)
	} else if deleted > 0 {
		log.Printf("Cleaned up %d old reports", deleted)
	}
}
