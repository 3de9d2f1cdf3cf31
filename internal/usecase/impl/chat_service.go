package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"portal/config"
	deliverycontext "portal/internal/delivery/context"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/repository"
	"portal/internal/domain/service"
	"portal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// assistantErrorText is the fixed transcript entry appended when the
// backend call fails. The underlying error is displayed separately.
const assistantErrorText = "Sorry, I encountered an error. Please try again."

// chatService implements the ChatUsecase interface.
type chatService struct {
	gateway     service.BackendGateway
	transcripts repository.TranscriptRepository
	greeting    string
	maxLength   int
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for chatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	Gateway     service.BackendGateway
	Transcripts repository.TranscriptRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		gateway:     params.Gateway,
		transcripts: params.Transcripts,
		greeting:    params.Config.Chat.Greeting,
		maxLength:   params.Config.Chat.MaxMessageLength,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Transcript returns the session's transcript, seeding the assistant
// greeting on first access.
func (srv *chatService) Transcript(ctx context.Context, sessionToken string) ([]*entity.ChatMessage, error) {
	messages, err := srv.transcripts.Messages(ctx, sessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "load transcript")
	}
	if len(messages) > 0 {
		return messages, nil
	}

	greeting := entity.NewChatMessage(entity.RoleAssistant, srv.greeting)
	if err := srv.transcripts.Append(ctx, sessionToken, greeting); err != nil {
		return nil, errors.Wrap(err, "seed greeting")
	}

	return []*entity.ChatMessage{greeting}, nil
}

// Send appends the user message, forwards it and appends exactly one
// assistant entry, success or failure.
func (srv *chatService) Send(ctx context.Context, input *usecase.SendInput) (*usecase.SendOutput, error) {
	content := strings.TrimSpace(input.Message)
	if content == "" {
		return nil, domainerrors.NewValidation("Message is required")
	}
	if utf8.RuneCountInString(content) > srv.maxLength {
		return nil, domainerrors.NewValidation("Message is too long")
	}

	userMessage := entity.NewChatMessage(entity.RoleUser, content)
	if err := srv.transcripts.Append(ctx, input.SessionToken, userMessage); err != nil {
		return nil, errors.Wrap(err, "append user message")
	}

	output := &usecase.SendOutput{User: userMessage}

	reply, err := srv.gateway.SendChat(ctx, input.SessionToken, content)
	if err != nil {
		srv.log(ctx).Warn("chat request failed", slog.Any("error", err))
		output.Assistant = entity.NewChatMessage(entity.RoleAssistant, assistantErrorText)
		output.FlowErr = err
	} else {
		output.Assistant = entity.NewChatMessage(entity.RoleAssistant, reply)
	}

	if err := srv.transcripts.Append(ctx, input.SessionToken, output.Assistant); err != nil {
		return nil, errors.Wrap(err, "append assistant message")
	}

	return output, nil
}

// EndSession discards the session's transcript.
func (srv *chatService) EndSession(ctx context.Context, sessionToken string) error {
	return errors.Wrap(srv.transcripts.Clear(ctx, sessionToken), "clear transcript")
}
