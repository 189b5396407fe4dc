package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/artem13815/hr/ingest/pkg/decode"
	"github.com/artem13815/hr/ingest/pkg/resume"
)

// Store is the slice of the resume repository a job needs.
type Store interface {
	resume.StatusStore
	resume.ProfileStore
	GetMetaAny(ctx context.Context, id uuid.UUID) (resume.Resume, error)
}

// Job parses one stored resume and records the outcome. Status writes are
// best effort: a failing status store is logged and never changes the outcome.
type Job struct {
	store  Store
	files  resume.Fetcher
	parser *Parser
	log    *log.Logger
}

func NewJob(store Store, files resume.Fetcher, parser *Parser, logger *log.Logger) *Job {
	if parser == nil {
		parser = NewParser()
	}
	return &Job{store: store, files: files, parser: parser, log: logger}
}

// Run walks the record through Processing to Completed or Failed. The caller's
// cancellation is ignored once the job has started.
func (j *Job) Run(ctx context.Context, id uuid.UUID) resume.ParseOutcome {
	ctx = context.WithoutCancel(ctx)
	started := time.Now()

	j.setStatus(ctx, id, resume.StatusProcessing, nil)

	profile, err := j.process(ctx, id)
	if err != nil {
		out := resume.Failed(err)
		detail := out.Err.Error()
		j.setStatus(ctx, id, resume.StatusFailed, &detail)
		j.log.Warn().
			Str("resume_id", id.String()).
			Str("kind", string(out.Err.Kind)).
			Err(out.Err.Cause).
			Dur("took", time.Since(started)).
			Msg("ingest.job.failed")
		return out
	}

	j.setStatus(ctx, id, resume.StatusCompleted, nil)
	j.log.Info().
		Str("resume_id", id.String()).
		Int("skills", len(profile.Skills)).
		Int("experiences", len(profile.Experiences)).
		Int("education", len(profile.Education)).
		Dur("took", time.Since(started)).
		Msg("ingest.job.completed")
	return resume.Succeeded(profile)
}

func (j *Job) process(ctx context.Context, id uuid.UUID) (resume.ExtractedProfile, error) {
	meta, err := j.store.GetMetaAny(ctx, id)
	if errors.Is(err, resume.ErrNotFound) {
		return resume.ExtractedProfile{}, resume.NewError(resume.KindResumeNotFound, id.String(), err)
	}
	if err != nil {
		return resume.ExtractedProfile{}, fmt.Errorf("load resume: %w", err)
	}

	data, err := j.files.Fetch(ctx, meta.StorageKey)
	if err != nil {
		return resume.ExtractedProfile{}, err
	}

	profile, err := j.parser.Parse(data, sourceExt(meta))
	if err != nil {
		return resume.ExtractedProfile{}, err
	}

	if err := j.store.Persist(ctx, id, profile); err != nil {
		return resume.ExtractedProfile{}, fmt.Errorf("persist profile: %w", err)
	}
	return profile, nil
}

// sourceExt prefers the stored key's extension and falls back to the
// declared content type.
func sourceExt(meta resume.Resume) string {
	if ext := decode.ExtFromPath(meta.StorageKey); decode.Supported(ext) {
		return ext
	}
	if ext, ok := decode.ExtForMIME(meta.MimeType); ok {
		return ext
	}
	return decode.ExtFromPath(meta.Filename)
}

func (j *Job) setStatus(ctx context.Context, id uuid.UUID, status resume.ProcessingStatus, detail *string) {
	if err := j.store.SetStatus(ctx, id, status, detail); err != nil {
		j.log.Error().
			Str("resume_id", id.String()).
			Str("status", string(status)).
			Err(err).
			Msg("ingest.status.write_failed")
	}
}
