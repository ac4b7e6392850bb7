package detector

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MikeSquared-Agency/promisekeeper/internal/llm"
)

const tracerName = "promisekeeper/detector"

// dateLayout matches JavaScript's Date.toISOString, which the app parses.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// Completer sends one chat completion and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Config is read once at startup. APIKey is only checked for presence; the
// Completer carries the credential itself.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
}

type Detector struct {
	llm    Completer
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func New(completer Completer, cfg Config, logger *slog.Logger) *Detector {
	return &Detector{
		llm:    completer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return strings.ToLower(uuid.NewString()) },
	}
}

// Configured reports whether the provider API key is set.
func (d *Detector) Configured() bool {
	return d.cfg.APIKey != ""
}

func (d *Detector) Model() string {
	return d.cfg.Model
}

// DetectChat extracts commitments from a chat message and its context.
func (d *Detector) DetectChat(ctx context.Context, req ChatRequest) ([]CommitmentRecord, error) {
	if !d.Configured() {
		return nil, ErrConfiguration
	}

	in, err := NormalizeChat(req)
	if err != nil {
		return nil, err
	}

	d.logger.InfoContext(ctx, "detecting promises in chat",
		"source", in.Source,
		"context_turns", len(in.Context),
		"message_len", len(in.Current),
	)

	found, err := d.interpret(ctx, in.Source, BuildChatPrompt(in))
	if err != nil {
		return nil, err
	}

	records := make([]CommitmentRecord, 0, len(found))
	for _, c := range found {
		records = append(records, d.record(c, in.Source))
	}
	return records, nil
}

// DetectThread extracts commitments from an email thread and attaches
// avatars from the request's avatar map.
func (d *Detector) DetectThread(ctx context.Context, req ThreadRequest) ([]CommitmentRecord, error) {
	if !d.Configured() {
		return nil, ErrConfiguration
	}

	in, err := NormalizeThread(req)
	if err != nil {
		return nil, err
	}

	d.logger.InfoContext(ctx, "detecting promises in email thread",
		"messages", len(in.Messages),
		"avatars", len(in.AvatarMap),
	)

	found, err := d.interpret(ctx, SourceGmail, BuildThreadPrompt(in))
	if err != nil {
		return nil, err
	}

	records := make([]CommitmentRecord, 0, len(found))
	for _, c := range found {
		rec := d.record(c, SourceGmail)
		rec.AvatarURL = ResolveAvatar(c.Requester, in.AvatarMap)
		records = append(records, rec)
	}
	return records, nil
}

// interpret makes the single provider call and parses its reply.
func (d *Detector) interpret(ctx context.Context, source Source, msgs []llm.Message) ([]DetectedCommitment, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "detector.interpret",
		trace.WithAttributes(
			attribute.String("detector.source", string(source)),
			attribute.Int("detector.prompt_messages", len(msgs)),
			attribute.String("llm.model", d.cfg.Model),
		),
	)
	defer span.End()

	raw, err := d.llm.Complete(ctx, llm.Request{
		Model:       d.cfg.Model,
		Messages:    msgs,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		return nil, providerError(err)
	}

	if raw == "" {
		span.SetStatus(codes.Error, "empty response")
		return nil, ErrEmptyResponse
	}

	found, err := ParseDetection(raw)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to parse detection response",
			"error", err,
			"raw", raw,
		)
		span.SetStatus(codes.Error, "malformed response")
		return nil, err
	}

	span.SetAttributes(attribute.Int("detector.promises", len(found)))
	d.logger.InfoContext(ctx, "detection complete",
		"source", source,
		"promises", len(found),
	)
	return found, nil
}

func (d *Detector) record(c DetectedCommitment, source Source) CommitmentRecord {
	return CommitmentRecord{
		ID:                d.newID(),
		From:              c.Requester,
		Text:              c.RequestText,
		Date:              d.now().UTC().Format(dateLayout),
		Source:            source,
		IsIncomingRequest: false,
		FullText:          c.FullRequestText,
		CommitmentText:    c.CommitmentText,
	}
}

func providerError(err error) error {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{StatusCode: apiErr.StatusCode, Body: apiErr.Body, Err: err}
	}
	return &ProviderError{Err: err}
}
