package mattermost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mattermost/mattermost-server/v6/model"

	"github.com/hard-gainer/buurtstemming/internal/ballot"
	"github.com/hard-gainer/buurtstemming/internal/config"
	"github.com/hard-gainer/buurtstemming/internal/export"
	domain "github.com/hard-gainer/buurtstemming/internal/model"
)

// PollHandler is the poll behaviour exposed as slash commands
type PollHandler interface {
	Roll() domain.VoterRoll
	CastVote(ctx context.Context, houseNumber string, option domain.Option) (domain.Vote, error)
	Summary(ctx context.Context) string
	ExportLinks(ctx context.Context) export.Links
	ShareSummary(ctx context.Context, channelID string) error
}

// MattermostAPI is the part of Client4 the bot uses
type MattermostAPI interface {
	GetMe(etag string) (*model.User, *model.Response, error)
	GetTeamsForUser(userID, etag string) ([]*model.Team, *model.Response, error)
	ListCommands(teamID string, customOnly bool) ([]*model.Command, *model.Response, error)
	CreateCommand(cmd *model.Command) (*model.Command, *model.Response, error)
	CreatePost(post *model.Post) (*model.Post, *model.Response, error)
}

// CommandHandler defines a function command handler
type CommandHandler func(args []string, userID, channelID string) (string, error)

// Client provides a client for work with Mattermost API
type Client struct {
	client      MattermostAPI
	botUser     *model.User
	handlers    map[string]CommandHandler
	pollHandler PollHandler
}

// NewClient creates a new client Mattermost
func NewClient(cfg config.MattermostConfig, handler PollHandler) (*Client, error) {
	apiClient := model.NewAPIv4Client(cfg.MattermostBotURL)
	apiClient.SetToken(cfg.MattermostToken)

	botUser, _, err := apiClient.GetMe("")
	if err != nil {
		return nil, fmt.Errorf("failed to get bot user: %w", err)
	}

	slog.Info("Connected as bot user", "username", botUser.Username)

	return newClient(apiClient, botUser, handler), nil
}

func newClient(api MattermostAPI, botUser *model.User, handler PollHandler) *Client {
	client := &Client{
		client:      api,
		botUser:     botUser,
		pollHandler: handler,
		handlers:    make(map[string]CommandHandler),
	}

	client.RegisterCommandHandlers()
	return client
}

// RegisterCommandHandlers registers command handlers
func (c *Client) RegisterCommandHandlers() {
	c.RegisterCommandHandler("poll-vote", c.handlePollVote)
	c.RegisterCommandHandler("poll-results", c.handlePollResults)
	c.RegisterCommandHandler("poll-export", c.handlePollExport)
}

// RegisterCommandHandler registers command handler
func (c *Client) RegisterCommandHandler(command string, handler CommandHandler) {
	slog.Debug("Registering handler for command", "command", command)
	c.handlers[command] = handler
}

// slashCommands returns the commands announced to Mattermost
func slashCommands(endpoint string) []*model.Command {
	return []*model.Command{
		{
			Trigger:          "poll-vote",
			Method:           "P",
			AutoComplete:     true,
			AutoCompleteDesc: "Stem uitbrengen: /poll-vote huisnummer struiken|gras|onthouding",
			AutoCompleteHint: "huisnummer optie",
			URL:              endpoint,
		},
		{
			Trigger:          "poll-results",
			Method:           "P",
			AutoComplete:     true,
			AutoCompleteDesc: "Toon de live resultaten",
			URL:              endpoint,
		},
		{
			Trigger:          "poll-export",
			Method:           "P",
			AutoComplete:     true,
			AutoCompleteDesc: "Deel de uitslag in dit kanaal",
			URL:              endpoint,
		},
	}
}

// RegisterCommands registers bot commands in every team of the bot
func (c *Client) RegisterCommands(cfg config.MattermostConfig) error {
	endpoint := strings.TrimSuffix(cfg.MattermostBotHTTPAddr, "/") + "/commands"

	teams, _, err := c.client.GetTeamsForUser(c.botUser.Id, "")
	if err != nil {
		return fmt.Errorf("failed to get teams: %w", err)
	}

	for _, team := range teams {
		existing := make(map[string]bool)
		existingCommands, _, err := c.client.ListCommands(team.Id, true)
		if err != nil {
			slog.Error("Failed to get existing commands", "team", team.Name, "error", err)
		}
		for _, cmd := range existingCommands {
			existing[cmd.Trigger] = true
		}

		for _, cmd := range slashCommands(endpoint) {
			if existing[cmd.Trigger] {
				continue
			}

			cmd.TeamId = team.Id
			cmd.CreatorId = c.botUser.Id

			if _, _, err := c.client.CreateCommand(cmd); err != nil {
				return fmt.Errorf("failed to register command %s: %w", cmd.Trigger, err)
			}

			slog.Info("Registered command", "trigger", cmd.Trigger, "team", team.Name)
		}
	}
	return nil
}

// handlePollVote handles poll voting
func (c *Client) handlePollVote(args []string, userID, channelID string) (string, error) {
	if len(args) < 1 {
		return "Usage: `/poll-vote [huisnummer] [struiken|gras|onthouding]`", nil
	}

	option := domain.OptionNone
	if len(args) > 1 {
		option = domain.ParseOption(strings.ToLower(args[1]))
	}

	vote, err := c.pollHandler.CastVote(context.Background(), args[0], option)
	if err != nil {
		if ballot.IsRejection(err) {
			return ballot.Message(err, c.pollHandler.Roll()), nil
		}
		return "", fmt.Errorf("failed to vote: %w", err)
	}

	return fmt.Sprintf("%s (huisnummer %d: **%s**)", ballot.SuccessMessage, vote.HouseNumber, vote.Option.Label()), nil
}

// handlePollResults shows the current summary
func (c *Client) handlePollResults(args []string, userID, channelID string) (string, error) {
	return c.pollHandler.Summary(context.Background()), nil
}

// shareFailedNotice is prepended to the export links when the channel post fails
const shareFailedNotice = "De uitslag kon niet in dit kanaal gedeeld worden, gebruik de links hieronder."

// handlePollExport shares the summary in the channel and returns the export links.
// The links are returned even when sharing fails.
func (c *Client) handlePollExport(args []string, userID, channelID string) (string, error) {
	ctx := context.Background()

	links := c.pollHandler.ExportLinks(ctx)
	response := fmt.Sprintf("[📧 Mail naar Gemeente](%s) | [💬 Deel in WhatsApp](%s)", links.Mailto, links.Share)

	if err := c.pollHandler.ShareSummary(ctx, channelID); err != nil {
		slog.Error("Failed to share results", "channel_id", channelID, "error", err)
		return shareFailedNotice + "\n" + response, nil
	}

	return response, nil
}

// PostMessage posts message to the channel
func (c *Client) PostMessage(channelID, message string) error {
	post := &model.Post{
		UserId:    c.botUser.Id,
		ChannelId: channelID,
		Message:   message,
	}

	_, _, err := c.client.CreatePost(post)
	if err != nil {
		slog.Error("Failed to post message", "channel_id", channelID, "error", err)
		return err
	}

	return nil
}

// ErrUnknownCommand is returned for commands without a handler
var ErrUnknownCommand = errors.New("unknown command")

// HandleCommand implements interface PollCommandHandler
func (c *Client) HandleCommand(command string, args []string, userID, channelID string) (string, error) {
	commandName := strings.TrimPrefix(command, "/")

	handler, exists := c.handlers[commandName]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, commandName)
	}

	return handler(args, userID, channelID)
}
