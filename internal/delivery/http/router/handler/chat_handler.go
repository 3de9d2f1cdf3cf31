package handler

import (
	"net/http"

	"portal/config"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/usecase"

	"github.com/labstack/echo/v4"
)

// chatPage is the view model of the chat template.
type chatPage struct {
	Title     string
	Active    string
	Error     string
	Messages  []*entity.ChatMessage
	MaxLength int
}

// ChatHandler serves the chat view.
type ChatHandler struct {
	uc        usecase.ChatUsecase
	maxLength int
}

// NewChatHandler is the constructor for ChatHandler.
func NewChatHandler(uc usecase.ChatUsecase, cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		uc:        uc,
		maxLength: cfg.Chat.MaxMessageLength,
	}
}

// Show renders the transcript, seeding the greeting on first view.
func (h *ChatHandler) Show(c echo.Context) error {
	session, _ := sessionFromContext(c)

	messages, err := h.uc.Transcript(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "chat.html", chatPage{
		Title:     "Chat",
		Active:    "chat",
		Messages:  messages,
		MaxLength: h.maxLength,
	})
}

// Send handles a chat submission and re-renders the transcript. Backend
// failures still render: the assistant slot carries the fixed error text
// and the underlying message is shown separately.
func (h *ChatHandler) Send(c echo.Context) error {
	session, _ := sessionFromContext(c)

	input := usecase.SendInput{
		SessionToken: session.Token,
		Message:      c.FormValue("message"),
	}

	var flowMessage string
	output, err := h.uc.Send(c.Request().Context(), &input)
	switch {
	case err != nil:
		flowMessage = domainerrors.MessageFor(err, domainerrors.GenericMessage)
	case output.FlowErr != nil:
		flowMessage = domainerrors.MessageFor(output.FlowErr, "An error occurred while sending the message")
	}

	messages, err := h.uc.Transcript(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "chat.html", chatPage{
		Title:     "Chat",
		Active:    "chat",
		Error:     flowMessage,
		Messages:  messages,
		MaxLength: h.maxLength,
	})
}
