package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hard-gainer/buurtstemming/internal/ballot"
	"github.com/hard-gainer/buurtstemming/internal/export"
	"github.com/hard-gainer/buurtstemming/internal/model"
	"github.com/hard-gainer/buurtstemming/internal/notification"
)

// service errors
var (
	ErrNotifierNotConfigured = errors.New("messaging export is not configured")
	ErrNoChannel             = errors.New("no channel to share the results in")
)

// Mailer delivers the summary by mail
type Mailer interface {
	Enabled() bool
	Send(subject, body string) error
}

// Service represents service layer
type Service struct {
	engine         *ballot.Engine
	broadcaster    notification.ResultsBroadcaster
	notifier       notification.MessageSender
	mailer         Mailer
	defaultChannel string
}

// NewService creates an instance of service
func NewService(engine *ballot.Engine, broadcaster notification.ResultsBroadcaster, mailer Mailer) *Service {
	s := &Service{
		engine:      engine,
		broadcaster: broadcaster,
		mailer:      mailer,
	}
	// publishing under the engine lock keeps broadcasts in recording order
	engine.OnRecorded(func(_ model.Vote, tally model.Tally) {
		s.publish(ballot.ComputeResults(tally))
	})
	return s
}

// SetNotifier sets the messaging collaborator once it is connected
func (s *Service) SetNotifier(notifier notification.MessageSender, defaultChannel string) {
	s.notifier = notifier
	s.defaultChannel = defaultChannel
}

// Roll returns the voter roll
func (s *Service) Roll() model.VoterRoll {
	return s.engine.Roll()
}

// CastVote validates and records a vote, rejections leave the tally unchanged
func (s *Service) CastVote(ctx context.Context, houseNumber string, option model.Option) (model.Vote, error) {
	slog.Info("Handling vote", "house_number", houseNumber, "option", option.String())

	vote, tally, err := s.engine.Cast(houseNumber, option)
	if err != nil {
		slog.Info("Vote rejected", "house_number", houseNumber, "option", option.String(),
			"reason", ballot.Reason(err))
		return model.Vote{}, err
	}

	slog.Info("Vote recorded", "vote_id", vote.ID, "house_number", vote.HouseNumber,
		"option", vote.Option.String(), "total", tally.Total())

	return vote, nil
}

// PublishResults pushes the current results to the live display, so viewers
// connecting before the first vote still get a frame
func (s *Service) PublishResults(ctx context.Context) {
	s.engine.View(func(tally model.Tally) {
		s.publish(ballot.ComputeResults(tally))
	})
}

// Results returns the live counts of the current tally
func (s *Service) Results(ctx context.Context) ballot.Results {
	return ballot.ComputeResults(s.engine.Tally())
}

// Summary returns the results report of the current tally
func (s *Service) Summary(ctx context.Context) string {
	return s.engine.Summary()
}

// ExportLinks returns the mail and messaging URIs carrying the summary
func (s *Service) ExportLinks(ctx context.Context) export.Links {
	return export.NewLinks(s.Summary(ctx))
}

// MailEnabled reports whether the summary can be mailed
func (s *Service) MailEnabled() bool {
	return s.mailer != nil && s.mailer.Enabled()
}

// MailSummary mails the summary to the configured recipient
func (s *Service) MailSummary(ctx context.Context) error {
	if !s.MailEnabled() {
		return export.ErrMailerDisabled
	}

	if err := s.mailer.Send(export.MailSubject, s.Summary(ctx)); err != nil {
		slog.Error("Failed to mail summary", "error", err)
		return fmt.Errorf("failed to mail summary: %w", err)
	}
	return nil
}

// ShareSummary posts the summary to a channel, the default channel when channelID is empty
func (s *Service) ShareSummary(ctx context.Context, channelID string) error {
	if s.notifier == nil {
		slog.Warn("Notifier not configured, summary not shared", "channel_id", channelID)
		return ErrNotifierNotConfigured
	}

	if channelID == "" {
		channelID = s.defaultChannel
	}
	if channelID == "" {
		return ErrNoChannel
	}

	if err := s.notifier.PostMessage(channelID, s.Summary(ctx)); err != nil {
		return fmt.Errorf("failed to share summary: %w", err)
	}

	slog.Info("Summary shared", "channel_id", channelID)
	return nil
}

func (s *Service) publish(results ballot.Results) {
	if s.broadcaster == nil {
		return
	}

	data, err := json.Marshal(results)
	if err != nil {
		slog.Error("Failed to encode live results", "error", err)
		return
	}
	s.broadcaster.Broadcast(data)
}
