package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subkit/internal/subtitles"
	"subkit/internal/subtitles/opensubtitles"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string

	cmd := &cobra.Command{
		Use:   "fetch <directory>",
		Short: "Download missing subtitles from OpenSubtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDirectory(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Fetch.Enabled {
				return fmt.Errorf("subtitle fetching is disabled; set fetch.enabled = true and fetch.api_key in the config")
			}
			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return err
			}

			lang := strings.TrimSpace(languageFlag)
			if lang == "" {
				lang = cfg.Fetch.Language
			}

			client, err := opensubtitles.NewClient(cfg.Fetch.APIKey, cfg.Fetch.UserAgent,
				opensubtitles.WithBaseURL(cfg.Fetch.BaseURL),
				opensubtitles.WithUserToken(cfg.Fetch.UserToken),
			)
			if err != nil {
				return err
			}
			cache, err := opensubtitles.OpenCache(cfg.Paths.CacheFile)
			if err != nil {
				return err
			}
			defer cache.Close()

			fetcher := subtitles.NewFetcher(client, cache, logger)
			results, err := fetcher.ProcessDirectory(cmd.Context(), dir, lang)
			if err != nil {
				return err
			}
			printFetchSummary(cmd, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Subtitle language to fetch (e.g. por-BR, eng)")
	return cmd
}

func printFetchSummary(cmd *cobra.Command, results []subtitles.FetchResult) {
	rows := make([][]string, 0, len(results))
	counts := make(map[subtitles.FetchStatus]int, 4)
	for _, r := range results {
		counts[r.Status]++
		rows = append(rows, []string{
			filepath.Base(r.VideoPath),
			string(r.Status),
			r.Message,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Video", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "\ndownloaded %d, skipped %d, not found %d, failed %d\n",
		counts[subtitles.FetchDownloaded],
		counts[subtitles.FetchSkipped],
		counts[subtitles.FetchNotFound],
		counts[subtitles.FetchFailed],
	)
}
