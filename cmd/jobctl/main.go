package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fadilmartias/job-intel/internal/config"
	"github.com/fadilmartias/job-intel/internal/middleware"
	"github.com/fadilmartias/job-intel/internal/repository"
	"github.com/fadilmartias/job-intel/internal/service"
	"github.com/fadilmartias/job-intel/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "jobctl",
		Short:        "Operate the job application intelligence pipeline",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(briefCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := repository.Migrate(config.ConnectDB()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func ingestCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "ingest [url]",
		Short: "Resolve a job posting URL into a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := usecase.NewIngestionUsecase(
				service.NewPageFetcher(),
				service.NewJobSearchService(config.LoadJSearchConfig()),
			)
			return printJSON(cmd.OutOrStdout(), uc.Ingest(cmd.Context(), userID, args[0]))
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "cli", "user id recorded in logs")
	return cmd
}

func searchCmd() *cobra.Command {
	var (
		page       int
		datePosted string
		remoteOnly bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Query the job search provider without touching quotas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewJobSearchService(config.LoadJSearchConfig())
			result, err := svc.Search(cmd.Context(), service.SearchParams{
				Query:          strings.Join(args, " "),
				Page:           page,
				DatePosted:     datePosted,
				RemoteJobsOnly: remoteOnly,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Listings) == 0 {
				fmt.Fprintln(out, "No listings found.")
				return nil
			}
			for _, l := range result.Listings {
				fmt.Fprintf(out, "%-40s  %-25s  %s\n", truncate(l.JobTitle, 40), truncate(l.EmployerName, 25), l.Location())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page")
	cmd.Flags().StringVar(&datePosted, "date-posted", "", "all, today, 3days, week or month")
	cmd.Flags().BoolVar(&remoteOnly, "remote", false, "remote jobs only")
	return cmd
}

func briefCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Print a user's tactical brief",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := usecase.NewBriefUsecase(repository.NewApplicationRepository(config.ConnectDB()))
			brief, err := uc.Generate(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), brief)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := middleware.SignToken(config.LoadAuthConfig(), userID, jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
