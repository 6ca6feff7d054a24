package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// targetFlags select what a résumé is scored against
type targetFlags struct {
	role   string
	level  string
	jdPath string
	jdURL  string
	mode   string
}

func (f *targetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.role, "role", "r", "", "Target role id, name or job title (e.g. \"Senior Backend Engineer\")")
	cmd.Flags().StringVarP(&f.level, "level", "l", "", "Target level (e.g. junior, mid, senior)")
	cmd.Flags().StringVarP(&f.jdPath, "jd", "j", "", "Path to a job description file (text or HTML); takes precedence over --role")
	cmd.Flags().StringVar(&f.jdURL, "jd-url", "", "URL of a job posting to fetch (mutually exclusive with --jd)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "Scoring mode: ats_simulation or quality_coach (default: inferred)")
}

// jobDescription reads the job description named by --jd or --jd-url. It returns an empty
// string when neither is set.
func (f *targetFlags) jobDescription(ctx context.Context, a *app) (string, error) {
	switch {
	case f.jdPath != "" && f.jdURL != "":
		return "", errors.New("--jd and --jd-url are mutually exclusive")
	case f.jdPath != "":
		text, meta, err := ingestion.ReadJobDescription(f.jdPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		logPosting(a, meta)
		return text, nil
	case f.jdURL != "":
		posting, err := a.fetcher.JobDescription(ctx, f.jdURL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		logPosting(a, posting.Metadata)
		return posting.Text, nil
	default:
		return "", nil
	}
}

func logPosting(a *app, meta *ingestion.Metadata) {
	if meta == nil {
		return
	}
	a.logger.Debug("job description loaded",
		zap.String("source", meta.Source),
		zap.String("format", meta.Format),
		zap.String("hash", meta.ShortHash()),
		zap.Int("words", meta.Words),
	)
}

// request builds a scoring request for resume against an already read job description
func (f *targetFlags) request(resume *types.ResumeData, jdText string) (scoring.Request, error) {
	mode, err := types.ParseMode(f.mode)
	if err != nil {
		return scoring.Request{}, err
	}

	req := scoring.Request{
		Resume: resume,
		Role:   f.role,
		Level:  f.level,
		Mode:   mode,
	}
	if jdText != "" {
		req.JobDescription = &types.JobDescription{Text: jdText}
	}
	return req, nil
}
