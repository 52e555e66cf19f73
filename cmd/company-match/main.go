package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/dcoelho/company-match/api"
	"github.com/dcoelho/company-match/config"
	"github.com/dcoelho/company-match/internal/analytics"
	"github.com/dcoelho/company-match/internal/audit"
	"github.com/dcoelho/company-match/internal/backend"
	"github.com/dcoelho/company-match/internal/engine"
	"github.com/dcoelho/company-match/internal/generator"
	"github.com/dcoelho/company-match/internal/logger"
	"github.com/dcoelho/company-match/internal/scoring"
	"github.com/dcoelho/company-match/model"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "company-match",
		Short: "Company name matching service",
		Long:  `Resolves free-text company names against a search backend and decides whether each candidate is a match`,
	}

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createDemoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildEngine loads configuration and wires the audit sinks and match engine.
func buildEngine(analyticsService *analytics.Service) (config.Config, *engine.Engine, *audit.FileSink, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	fileSink, err := audit.NewFileSink(cfg.AuditSinkPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	var sink audit.Sink = fileSink
	if analyticsService != nil {
		sink = audit.Tee{fileSink, analyticsService}
	}

	eng, err := engine.NewEngine(cfg, sink)
	if err != nil {
		fileSink.Close()
		return config.Config{}, nil, nil, err
	}
	return cfg, eng, fileSink, nil
}

// createServeCmd creates the HTTP server subcommand
func createServeCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP matching API",
		Long:  `Start the HTTP server exposing /match, /analytics, and /health`,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyticsService := analytics.NewService()
			cfg, eng, fileSink, err := buildEngine(analyticsService)
			if err != nil {
				return err
			}
			defer fileSink.Close()

			logger.Init(cfg.LogLevel, pretty)
			searcher := backend.NewClient(cfg.BackendEndpoint, cfg.BackendTopN)

			gin.SetMode(gin.ReleaseMode)
			router := gin.New()
			router.Use(gin.Recovery())
			api.SetupRoutes(router, api.NewAPI(searcher, eng, analyticsService))

			logger.Info().
				Int("port", cfg.ServerPort).
				Str("backend", cfg.BackendEndpoint).
				Msg("Starting company-match server")
			return router.Run(fmt.Sprintf(":%d", cfg.ServerPort))
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty-logs", false, "Human-readable console logs instead of JSON")

	return cmd
}

// createMatchCmd creates the one-shot match subcommand
func createMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match [query]",
		Short: "Match a single company name",
		Long:  `Look up one company name against the search backend and print the match decision as JSON`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, fileSink, err := buildEngine(nil)
			if err != nil {
				return err
			}
			defer fileSink.Close()
			logger.Init(cfg.LogLevel, true)

			searcher := backend.NewClient(cfg.BackendEndpoint, cfg.BackendTopN)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			candidates, err := searcher.Search(ctx, args[0])
			if err != nil {
				return err
			}

			result, err := eng.Match(args[0], candidates)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

// createDemoCmd creates the self-contained demo subcommand
func createDemoCmd() *cobra.Command {
	var seed int64
	var count int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a synthetic matching demo",
		Long:  `Generate synthetic company names, derive noisy lookup queries from them, and run each query through the match engine against a local candidate pool. No search backend is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, fileSink, err := buildEngine(nil)
			if err != nil {
				return err
			}
			defer fileSink.Close()
			logger.Init(cfg.LogLevel, true)

			gen := generator.New(seed)
			canonical := gen.RealisticNames(count)

			accepted, reviewed, rejected := 0, 0, 0
			for _, name := range canonical {
				query := gen.DirtyName(name)
				candidates := rankLocally(query, canonical, cfg.BackendTopN)

				result, err := eng.Match(query, candidates)
				if err != nil {
					return err
				}

				switch result.Status {
				case model.StatusAccept:
					accepted++
				case model.StatusReview:
					reviewed++
				case model.StatusReject:
					rejected++
				}

				fmt.Printf("%-8s %.3f  %-35q -> %q\n",
					result.Status, result.Confidence, query, result.MatchedName)
			}

			fmt.Printf("\n%d queries: %d accepted, %d review, %d rejected\n",
				count, accepted, reviewed, rejected)
			fmt.Printf("Audit trail: %s\n", cfg.AuditSinkPath)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed for reproducible runs")
	cmd.Flags().IntVar(&count, "count", 25, "Number of synthetic companies to generate")

	return cmd
}

// rankLocally stands in for the search backend in the demo: it scores every
// canonical name against the query by string similarity and returns the top n.
func rankLocally(query string, names []string, n int) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(names))
	for _, name := range names {
		score := scoring.StringSimilarity(query, name) * 10
		if score > 0 {
			candidates = append(candidates, model.Candidate{CanonicalName: name, BackendScore: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].BackendScore > candidates[j].BackendScore
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
