package inquiries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/intake/internal/classifier"
	"github.com/JaimeStill/intake/internal/notifier"
	"github.com/JaimeStill/intake/pkg/pagination"
	"github.com/JaimeStill/intake/pkg/storage"
)

// System defines the public contract for inquiry domain operations.
type System interface {
	Handler() *Handler

	// Submit classifies, records, and confirms a new inquiry. Classification
	// and confirmation failures never fail the call; a store failure does.
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error)

	// Respond emails a manager reply for a stored inquiry. The record is not
	// modified, and delivery failure fails the call.
	Respond(ctx context.Context, id int64, cmd RespondCommand) (*RespondResult, error)

	Find(ctx context.Context, id int64) (*Inquiry, error)
	ListAll(ctx context.Context) ([]Inquiry, error)
	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Inquiry], error)

	// Transcript returns the archived classifier output for an inquiry.
	// The caller must close the reader.
	Transcript(ctx context.Context, id int64) (io.ReadCloser, error)
}

// Options carries the tunables of the intake flows.
type Options struct {
	Pagination      pagination.Config
	MaxBodySize     int64
	ClassifyTimeout time.Duration
	NotifyTimeout   time.Duration
}

const (
	defaultClassifyTimeout = 10 * time.Second
	defaultNotifyTimeout   = 5 * time.Second
)

// Transcript is the archived record of one classification attempt.
type Transcript struct {
	InquiryID      int64             `json:"inquiry_id"`
	Backend        string            `json:"backend"`
	Classification classifier.Result `json:"classification"`
	Raw            string            `json:"raw"`
	Error          string            `json:"error,omitempty"`
	ErrorKind      classifier.Kind   `json:"error_kind,omitempty"`
	Duration       string            `json:"duration"`
}

type system struct {
	store      Store
	classifier classifier.Classifier
	notifier   notifier.Notifier
	archive    storage.System
	logger     *slog.Logger
	opts       Options
}

// New creates the inquiry system from its ports.
func New(
	store Store,
	cls classifier.Classifier,
	ntf notifier.Notifier,
	archive storage.System,
	logger *slog.Logger,
	opts Options,
) System {
	if opts.ClassifyTimeout <= 0 {
		opts.ClassifyTimeout = defaultClassifyTimeout
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = defaultNotifyTimeout
	}
	return &system{
		store:      store,
		classifier: cls,
		notifier:   ntf,
		archive:    archive,
		logger:     logger.With("system", "inquiries"),
		opts:       opts,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger, s.opts.Pagination, s.opts.MaxBodySize)
}

type attempt struct {
	result   classifier.Result
	err      error
	duration time.Duration
}

func (s *system) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error) {
	a := s.classify(ctx, cmd.Inquiry)
	resolved := classifier.Resolve(a.result, a.err)

	if a.err != nil {
		s.logger.Warn(
			"classification failed, using fallback",
			"kind", classifier.KindOf(a.err),
			"error", a.err,
		)
	}

	inq, err := s.store.Insert(ctx, cmd, resolved)
	if err != nil {
		return nil, err
	}

	s.logger.Info(
		"inquiry recorded",
		"id", inq.ID,
		"category", inq.Category,
		"urgency", inq.Urgency,
	)

	// the record is durable; side effects complete even if the caller goes away
	detached := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.Go(func() error {
		s.confirm(detached, inq)
		return nil
	})
	g.Go(func() error {
		s.archiveTranscript(detached, inq.ID, resolved, a)
		return nil
	})
	g.Wait()

	return &SubmitResult{
		Inquiry:        *inq,
		Classification: resolved,
	}, nil
}

func (s *system) classify(ctx context.Context, text string) attempt {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ClassifyTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.classifier.Classify(ctx, text)
	return attempt{
		result:   result,
		err:      err,
		duration: time.Since(start),
	}
}

func (s *system) confirm(ctx context.Context, inq *Inquiry) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.NotifyTimeout)
	defer cancel()

	msgID, err := s.notifier.Notify(
		ctx,
		notifier.KindConfirmation,
		inq.Email,
		notifier.ConfirmationData(inq.Name, inq.ID, inq.InquiryText),
	)
	if err != nil {
		s.logger.Warn("confirmation email failed", "id", inq.ID, "error", err)
		return
	}

	s.logger.Info("confirmation email sent", "id", inq.ID, "message_id", msgID)
}

func (s *system) archiveTranscript(ctx context.Context, id int64, resolved classifier.Result, a attempt) {
	t := Transcript{
		InquiryID:      id,
		Backend:        s.classifier.Name(),
		Classification: resolved,
		Raw:            resolved.Raw,
		Duration:       a.duration.String(),
	}
	if a.err != nil {
		t.Error = a.err.Error()
		t.ErrorKind = classifier.KindOf(a.err)
	}

	body, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		s.logger.Warn("transcript encode failed", "id", id, "error", err)
		return
	}

	err = s.archive.Upload(ctx, transcriptKey(id), bytes.NewReader(body), "application/json")
	switch {
	case err == nil:
		s.logger.Debug("transcript archived", "id", id)
	case errors.Is(err, storage.ErrDisabled):
	default:
		s.logger.Warn("transcript archive failed", "id", id, "error", err)
	}
}

func (s *system) Respond(ctx context.Context, id int64, cmd RespondCommand) (*RespondResult, error) {
	inq, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	nctx, cancel := context.WithTimeout(ctx, s.opts.NotifyTimeout)
	defer cancel()

	msgID, err := s.notifier.Notify(
		nctx,
		notifier.KindResponse,
		inq.Email,
		notifier.ResponseData(inq.ID, cmd.Response, inq.InquiryText),
	)
	if err != nil {
		if errors.Is(err, notifier.ErrUnconfigured) {
			return nil, fmt.Errorf("%w: %w", ErrNotifierUnconfigured, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.logger.Info("response email sent", "id", inq.ID, "message_id", msgID)

	return &RespondResult{
		InquiryID: inq.ID,
		MessageID: msgID,
	}, nil
}

func (s *system) Find(ctx context.Context, id int64) (*Inquiry, error) {
	return s.store.Find(ctx, id)
}

func (s *system) ListAll(ctx context.Context) ([]Inquiry, error) {
	return s.store.ListAll(ctx)
}

func (s *system) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Inquiry], error) {
	return s.store.List(ctx, page, filters)
}

func (s *system) Transcript(ctx context.Context, id int64) (io.ReadCloser, error) {
	if _, err := s.store.Find(ctx, id); err != nil {
		return nil, err
	}

	rc, err := s.archive.Download(ctx, transcriptKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrDisabled) {
			return nil, fmt.Errorf("%w: %w", ErrTranscriptNotFound, err)
		}
		return nil, fmt.Errorf("download transcript: %w", err)
	}
	return rc, nil
}

func transcriptKey(id int64) string {
	return fmt.Sprintf("inquiries/%d/classification.json", id)
}
