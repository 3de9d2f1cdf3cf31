package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"portal/config"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/service"
	"portal/internal/infra/transcript"
	"portal/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatService(gateway service.BackendGateway) usecase.ChatUsecase {
	cfg := &config.Config{
		Chat: &config.ChatConfig{
			MaxMessageLength: 500,
			Greeting:         "Hello! How can I help you today?",
		},
	}

	return NewChatService(ChatServiceParams{
		Gateway:     gateway,
		Transcripts: transcript.NewMemoryRepository(),
		Config:      cfg,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestChatService_Transcript_SeedsGreetingOnce(t *testing.T) {
	svc := newChatService(&mockGateway{})
	ctx := context.Background()

	first, err := svc.Transcript(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, entity.RoleAssistant, first[0].Role)
	assert.Equal(t, "Hello! How can I help you today?", first[0].Content)

	second, err := svc.Transcript(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, second, 1, "greeting must not be duplicated")
}

func TestChatService_Send_AppendsUserThenAssistant(t *testing.T) {
	gateway := &mockGateway{}
	svc := newChatService(gateway)
	ctx := context.Background()

	gateway.On("SendChat", ctx, "session-1", "Hello").Return("Hi! What can I do for you?", nil)

	output, err := svc.Send(ctx, &usecase.SendInput{SessionToken: "session-1", Message: "Hello"})

	require.NoError(t, err)
	require.Nil(t, output.FlowErr)
	assert.Equal(t, entity.RoleUser, output.User.Role)
	assert.Equal(t, "Hello", output.User.Content)
	assert.Equal(t, entity.RoleAssistant, output.Assistant.Role)
	assert.Equal(t, "Hi! What can I do for you?", output.Assistant.Content)

	// Exactly one user and one assistant entry landed in the transcript.
	messages, err := svc.Transcript(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, entity.RoleUser, messages[0].Role)
	assert.Equal(t, entity.RoleAssistant, messages[1].Role)
}

func TestChatService_Send_FailureAppendsExactlyOneAssistantEntry(t *testing.T) {
	gateway := &mockGateway{}
	svc := newChatService(gateway)
	ctx := context.Background()

	gateway.On("SendChat", ctx, "session-1", "Hello").
		Return("", domainerrors.NewAPIError(500, "Something went wrong", ""))

	output, err := svc.Send(ctx, &usecase.SendInput{SessionToken: "session-1", Message: "Hello"})

	require.NoError(t, err)
	require.NotNil(t, output.FlowErr)
	assert.Equal(t, "Something went wrong", domainerrors.MessageFor(output.FlowErr, ""))
	assert.Equal(t, assistantErrorText, output.Assistant.Content)

	messages, err := svc.Transcript(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, messages, 2, "one user entry and one assistant entry, never zero, never two")
}

func TestChatService_Send_EmptyMessageAppendsNothing(t *testing.T) {
	gateway := &mockGateway{}
	svc := newChatService(gateway)
	ctx := context.Background()

	_, err := svc.Send(ctx, &usecase.SendInput{SessionToken: "session-1", Message: "   "})

	require.Error(t, err)
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	gateway.AssertNotCalled(t, "SendChat", mock.Anything, mock.Anything, mock.Anything)

	messages, err := svc.Transcript(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, messages, 1, "only the seeded greeting")
}

func TestChatService_Send_RejectsOversizedMessage(t *testing.T) {
	gateway := &mockGateway{}
	svc := newChatService(gateway)

	_, err := svc.Send(context.Background(), &usecase.SendInput{
		SessionToken: "session-1",
		Message:      strings.Repeat("a", 501),
	})

	require.Error(t, err)
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	gateway.AssertNotCalled(t, "SendChat", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_EndSession_DiscardsTranscript(t *testing.T) {
	gateway := &mockGateway{}
	svc := newChatService(gateway)
	ctx := context.Background()

	gateway.On("SendChat", ctx, "session-1", "Hello").Return("Hi", nil)
	_, err := svc.Send(ctx, &usecase.SendInput{SessionToken: "session-1", Message: "Hello"})
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, "session-1"))

	messages, err := svc.Transcript(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, messages, 1, "a fresh transcript starts with the greeting again")
}
