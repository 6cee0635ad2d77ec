package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hard-gainer/buurtstemming/internal/ballot"
	"github.com/hard-gainer/buurtstemming/internal/config"
	"github.com/hard-gainer/buurtstemming/internal/export"
	"github.com/hard-gainer/buurtstemming/internal/hub"
	"github.com/hard-gainer/buurtstemming/internal/model"
)

// successDismissAfter is how long clients show the success message
const successDismissAfter = 3 * time.Second

// PollService is the poll behaviour served over HTTP
type PollService interface {
	Roll() model.VoterRoll
	CastVote(ctx context.Context, houseNumber string, option model.Option) (model.Vote, error)
	Results(ctx context.Context) ballot.Results
	Summary(ctx context.Context) string
	ExportLinks(ctx context.Context) export.Links
	MailSummary(ctx context.Context) error
}

// PollCommandHandler represents an interface for handling command polls
type PollCommandHandler interface {
	HandleCommand(command string, args []string, userID, channelID string) (string, error)
}

// ViewerHub accepts live results viewers
type ViewerHub interface {
	Register(client hub.Client)
	Unregister(client hub.Client)
}

// HouseNumberField accepts the house number as a JSON number or string
type HouseNumberField string

// UnmarshalJSON implements json.Unmarshaler
func (f *HouseNumberField) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*f = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = HouseNumberField(s)
	default:
		*f = HouseNumberField(raw)
	}
	return nil
}

// VoteRequest represents a submitted ballot
type VoteRequest struct {
	HouseNumber HouseNumberField `json:"house_number"`
	Option      string           `json:"option"`
}

// VoteResponse represents an accepted ballot
type VoteResponse struct {
	Vote           model.Vote `json:"vote"`
	Message        string     `json:"message"`
	DismissAfterMS int64      `json:"dismiss_after_ms"`
}

// RejectionResponse represents a rejected ballot
type RejectionResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// CommandRequest  represents a request to execute a command
type CommandRequest struct {
	Command   string   `json:"command" form:"command"`
	Text      string   `json:"text" form:"text"`
	Args      []string `json:"args" form:"-"`
	UserID    string   `json:"user_id" form:"user_id"`
	ChannelID string   `json:"channel_id" form:"channel_id"`
}

// CommandResponse represents an answer to execute a command
type CommandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// HTTPHandler serves the poll over HTTP
type HTTPHandler struct {
	server         *http.Server
	service        PollService
	viewers        ViewerHub
	commandHandler PollCommandHandler
}

// NewHTTPHandler creates a new HTTP-handler for request
func NewHTTPHandler(cfg config.HTTPConfig, service PollService, viewers ViewerHub) *HTTPHandler {
	h := &HTTPHandler{
		service: service,
		viewers: viewers,
	}

	h.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      h.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return h
}

// SetCommandHandler enables the slash-command webhook
func (h *HTTPHandler) SetCommandHandler(handler PollCommandHandler) {
	h.commandHandler = handler
}

// Routes returns the request multiplexer
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /votes", withLogging(h.handleVote))
	mux.HandleFunc("GET /results", withLogging(h.handleResults))
	mux.HandleFunc("GET /summary", withLogging(h.handleSummary))
	mux.HandleFunc("GET /roll", withLogging(h.handleRoll))
	mux.HandleFunc("GET /export", withLogging(h.handleExport))
	mux.HandleFunc("POST /export/mail", withLogging(h.handleExportMail))
	mux.HandleFunc("POST /commands", withLogging(h.handleCommand))
	mux.HandleFunc("GET /ws", h.handleWebSocket)

	return mux
}

// Start starts an HTTP-server
func (h *HTTPHandler) Start() {
	go func() {
		slog.Info("Starting HTTP server", "address", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
		}
	}()
}

// Stop stops an HTTP-server
func (h *HTTPHandler) Stop() error {
	slog.Info("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.server.Shutdown(ctx)
}

// handleVote handles a submitted ballot, as JSON or form data
func (h *HTTPHandler) handleVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to parse JSON request", "error", err)
			errorResponse(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			slog.Error("Failed to parse form data", "error", err)
			errorResponse(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.HouseNumber = HouseNumberField(r.Form.Get("house_number"))
		req.Option = r.Form.Get("option")
	}

	vote, err := h.service.CastVote(r.Context(), string(req.HouseNumber), model.ParseOption(req.Option))
	if err != nil {
		if ballot.IsRejection(err) {
			jsonResponse(w, http.StatusUnprocessableEntity, RejectionResponse{
				Error:   err.Error(),
				Reason:  ballot.Reason(err),
				Message: ballot.Message(err, h.service.Roll()),
			})
			return
		}
		slog.Error("Failed to cast vote", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to cast vote")
		return
	}

	jsonResponse(w, http.StatusCreated, VoteResponse{
		Vote:           vote,
		Message:        ballot.SuccessMessage,
		DismissAfterMS: successDismissAfter.Milliseconds(),
	})
}

func (h *HTTPHandler) handleResults(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.service.Results(r.Context()))
}

func (h *HTTPHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.service.Summary(r.Context())))
}

func (h *HTTPHandler) handleRoll(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string][]int{"house_numbers": h.service.Roll().Numbers()})
}

func (h *HTTPHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.service.ExportLinks(r.Context()))
}

func (h *HTTPHandler) handleExportMail(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MailSummary(r.Context()); err != nil {
		if errors.Is(err, export.ErrMailerDisabled) {
			errorResponse(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		errorResponse(w, http.StatusBadGateway, "failed to send mail")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleCommand handles command requests
func (h *HTTPHandler) handleCommand(w http.ResponseWriter, r *http.Request) {
	if h.commandHandler == nil {
		errorResponse(w, http.StatusNotFound, "slash commands are not enabled")
		return
	}

	var commandName string
	var args []string
	var userID, channelID string

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req CommandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to parse JSON request", "error", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		commandName = req.Command
		args = req.Args
		if len(args) == 0 {
			args = parseCommandArgs(req.Text)
		}
		userID = req.UserID
		channelID = req.ChannelID
	} else {
		if err := r.ParseForm(); err != nil {
			slog.Error("Failed to parse form data", "error", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		commandName = r.Form.Get("command")
		args = parseCommandArgs(r.Form.Get("text"))
		userID = r.Form.Get("user_id")
		channelID = r.Form.Get("channel_id")
	}

	commandName = strings.TrimPrefix(commandName, "/")

	slog.Info("Processing command",
		"command", commandName,
		"args", args,
		"user_id", userID,
		"channel_id", channelID)

	response, err := h.commandHandler.HandleCommand(commandName, args, userID, channelID)
	if err != nil {
		slog.Error("Failed to handle command", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, http.StatusOK, CommandResponse{
		ResponseType: "in_channel",
		Text:         response,
	})
}

// parseCommandArgs parses command arguments enclosed in double quotes
func parseCommandArgs(text string) []string {
	if text == "" {
		return nil
	}

	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		char := text[i]

		switch char {
		case '"':
			inQuotes = !inQuotes

			if !inQuotes && currentArg.Len() > 0 {
				args = append(args, currentArg.String())
				currentArg.Reset()
			}
		case ' ', '\t', '\n', '\r':
			if inQuotes {
				currentArg.WriteByte(char)
			} else if currentArg.Len() > 0 {
				args = append(args, currentArg.String())
				currentArg.Reset()
			}
		default:
			currentArg.WriteByte(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}
