package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artem13815/hr/ingest/pkg/decode"
	"github.com/artem13815/hr/ingest/pkg/ingest"
	"github.com/artem13815/hr/ingest/pkg/resume"
	"github.com/artem13815/hr/ingest/pkg/storage/local"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract a profile from a local PDF or DOCX",
	Long:  `Runs the same decoder and extractors as the workers and prints the profile as JSON. A classified error is printed instead when the file cannot be parsed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseMaxBytes int64
	parseRawText  bool
)

func init() {
	parseCmd.Flags().Int64Var(&parseMaxBytes, "max-bytes", local.DefaultMaxBytes, "Reject files larger than this")
	parseCmd.Flags().BoolVar(&parseRawText, "raw", false, "Keep rawText in the output")
}

func runParse(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	// тот же путь чтения, что у воркеров: лимит размера и классификация ошибок
	store, err := local.New(filepath.Dir(path), parseMaxBytes)
	if err != nil {
		return err
	}
	data, err := store.Fetch(cmd.Context(), filepath.Base(path))
	if err != nil {
		return printFailure(cmd, err)
	}

	profile, err := ingest.NewParser().Parse(data, decode.ExtFromPath(path))
	if err != nil {
		return printFailure(cmd, err)
	}
	if !parseRawText {
		profile.RawText = ""
	}
	logger.Debug().Str("file", path).Int("skills", len(profile.Skills)).
		Int("experiences", len(profile.Experiences)).Msg("resumectl.parse.done")

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}

// errReported means the failure was already printed; main only sets the exit code.
var errReported = errors.New("reported")

func printFailure(cmd *cobra.Command, err error) error {
	pe := resume.Classify(err)
	fmt.Fprintln(cmd.ErrOrStderr(), pe.Error())
	if pe.Retryable() {
		fmt.Fprintln(cmd.ErrOrStderr(), "(retryable)")
	}
	return errReported
}
