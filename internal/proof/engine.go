package proof

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mdproof/internal/changeset"
	"mdproof/internal/providers"
)

// Options carries the model parameters for a check run.
type Options struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	TopP         float64
	Delay        time.Duration
}

// Progress summarizes a check run. Skipped counts records that already had
// a status when the run started.
type Progress struct {
	Checked int
	Clean   int
	Flagged int
	Failed  int
	Skipped int
}

// SaveFunc persists the work list. The engine calls it after every checked
// record so an interrupted run loses at most the in-flight sentence.
type SaveFunc func(records []changeset.ChangeRecord) error

// Engine drives the AI check phase over a work list.
type Engine struct {
	checker providers.Checker
	opts    Options
	log     *zap.Logger
}

func New(checker providers.Checker, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{checker: checker, opts: opts, log: log}
}

// Run checks every unchecked record in order, mutating records in place.
// Transport failures mark the record failed and the run continues; an
// authentication failure or a failed save aborts the run. Cancellation is
// honored between sentences only.
func (e *Engine) Run(ctx context.Context, records []changeset.ChangeRecord, save SaveFunc) (Progress, error) {
	var prog Progress
	prompt := systemPrompt(e.opts.SystemPrompt)

	for i := range records {
		rec := &records[i]
		if rec.Status != changeset.StatusUnchecked {
			prog.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			return prog, err
		}
		if prog.Checked > 0 && e.opts.Delay > 0 {
			select {
			case <-time.After(e.opts.Delay):
			case <-ctx.Done():
				return prog, ctx.Err()
			}
		}

		resp, err := e.checker.Check(ctx, providers.CheckRequest{
			SystemPrompt: prompt,
			Sentence:     rec.Original,
			MaxTokens:    e.opts.MaxTokens,
			Temperature:  e.opts.Temperature,
			TopP:         e.opts.TopP,
		})
		prog.Checked++

		switch {
		case err != nil && errors.Is(err, context.Canceled):
			return prog, err
		case err != nil && providers.IsAuthError(err):
			return prog, fmt.Errorf("checking %s: %w", rec.Label, err)
		case err != nil:
			rec.Status = changeset.StatusFailed
			rec.CheckError = err.Error()
			prog.Failed++
			e.log.Warn("check failed", zap.String("label", rec.Label), zap.Error(err))
		default:
			e.apply(rec, resp.Content, &prog)
		}

		if err := save(records); err != nil {
			return prog, fmt.Errorf("saving work list: %w", err)
		}
	}
	return prog, nil
}

// apply records the model's verdict on rec. Unparsable output counts as a
// failure so the record is retried on the next run.
func (e *Engine) apply(rec *changeset.ChangeRecord, content string, prog *Progress) {
	v, err := parseVerdict(content)
	if err != nil {
		rec.Status = changeset.StatusFailed
		rec.CheckError = err.Error()
		prog.Failed++
		e.log.Warn("unparsable verdict", zap.String("label", rec.Label), zap.Error(err))
		return
	}

	rec.CheckError = ""
	if v.ErrorType == "" || v.CheckedText == "" || v.CheckedText == rec.Original {
		rec.Status = changeset.StatusClean
		rec.Suggestion = ""
		rec.ErrorType = ""
		rec.Description = ""
		prog.Clean++
		e.log.Debug("clean", zap.String("label", rec.Label))
		return
	}

	rec.Status = changeset.StatusFlagged
	rec.Suggestion = v.CheckedText
	rec.ErrorType = v.ErrorType
	rec.Description = v.Description
	prog.Flagged++
	e.log.Info("flagged",
		zap.String("label", rec.Label),
		zap.String("errorType", v.ErrorType))
}
