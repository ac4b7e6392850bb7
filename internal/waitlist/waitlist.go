package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DateLayout is the calendar-day format recorded for each signup.
const DateLayout = "2006-01-02"

var (
	ErrEmailRequired = errors.New("email is required")
	ErrNoSink        = errors.New("no waitlist destination configured")
)

// Sink stores one waitlist signup.
type Sink interface {
	Add(ctx context.Context, email string, joinedOn time.Time) error
}

type Service struct {
	sinks  []Sink
	logger *slog.Logger
	now    func() time.Time
}

func NewService(logger *slog.Logger, sinks ...Sink) *Service {
	return &Service{sinks: sinks, logger: logger, now: time.Now}
}

// Join records email in every configured sink and returns the signup day.
// Sinks are written in order and the first failure is returned.
func (s *Service) Join(ctx context.Context, email string) (time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return time.Time{}, ErrEmailRequired
	}
	if len(s.sinks) == 0 {
		return time.Time{}, ErrNoSink
	}

	joinedOn := s.now().UTC()
	for _, sink := range s.sinks {
		if err := sink.Add(ctx, email, joinedOn); err != nil {
			return time.Time{}, fmt.Errorf("add to waitlist: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "waitlist signup recorded",
		"joined_on", joinedOn.Format(DateLayout),
		"sinks", len(s.sinks),
	)
	return joinedOn, nil
}
