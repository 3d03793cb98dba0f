package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"subkit/internal/language"
	"subkit/internal/services/alass"
	"subkit/internal/subtitles"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var referenceFlag string
	var audioIndexFlag int

	cmd := &cobra.Command{
		Use:   "sync <directory>",
		Short: "Align subtitle timing for every video in a directory",
		Long: `Align subtitle timing using alass. When a reference-language subtitle is
present next to the video the target is aligned against it (text-to-text);
otherwise it is aligned against the video's audio track.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDirectory(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return err
			}

			interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
			reader := bufio.NewReader(cmd.InOrStdin())

			target := strings.TrimSpace(languageFlag)
			if target == "" {
				fallback, err := language.ParseTag(cfg.Fetch.Language)
				if err != nil {
					fallback = "pt-br"
				}
				target = promptString(cmd, reader, interactive, "Target subtitle language", fallback)
			}
			reference := strings.TrimSpace(referenceFlag)
			if reference == "" {
				fallback := cfg.Sync.ReferenceLanguage
				if fallback == "" {
					fallback = "eng"
				}
				reference = promptString(cmd, reader, interactive, "Reference subtitle language", fallback)
			}
			audioIndex := audioIndexFlag
			if !cmd.Flags().Changed("audio-index") {
				audioIndex = promptInt(cmd, reader, interactive, "Audio stream index (-1 = automatic)", cfg.Sync.AudioIndex)
			}

			aligner, err := alass.New(cfg.Tools.Alass)
			if err != nil {
				return err
			}
			syncer := subtitles.NewSyncer(aligner, cfg.Paths.BackupDirName, logger)
			return syncer.ProcessDirectory(cmd.Context(), subtitles.SyncRequest{
				Dir:               dir,
				TargetLanguage:    target,
				ReferenceLanguage: reference,
				AudioIndex:        audioIndex,
			})
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Language suffix of the subtitles to align (e.g. pt-br)")
	cmd.Flags().StringVarP(&referenceFlag, "reference-language", "r", "", "Language suffix of already-correct reference subtitles")
	cmd.Flags().IntVar(&audioIndexFlag, "audio-index", -1, "Audio stream index for audio alignment (-1 = automatic)")
	return cmd
}

// promptString asks on the terminal for a value, falling back to the default
// on empty input or when stdin is not interactive.
func promptString(cmd *cobra.Command, reader *bufio.Reader, interactive bool, label, fallback string) string {
	if !interactive {
		return fallback
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: ", label, fallback)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func promptInt(cmd *cobra.Command, reader *bufio.Reader, interactive bool, label string, fallback int) int {
	value := promptString(cmd, reader, interactive, label, strconv.Itoa(fallback))
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
