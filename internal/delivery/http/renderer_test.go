package http

import (
	"bytes"
	"testing"

	"portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererParsesAllTemplates(t *testing.T) {
	_, err := newRenderer()
	require.NoError(t, err)
}

func TestRendererExecutesChatTemplate(t *testing.T) {
	r, err := newRenderer()
	require.NoError(t, err)

	data := struct {
		Title     string
		Active    string
		Error     string
		Messages  []*entity.ChatMessage
		MaxLength int
	}{
		Title:     "Chat",
		Active:    "chat",
		Messages:  []*entity.ChatMessage{entity.NewChatMessage(entity.RoleAssistant, "Hello! How can I help you today?")},
		MaxLength: 500,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "chat.html", data, nil))
	assert.Contains(t, buf.String(), "Hello! How can I help you today?")
	assert.Contains(t, buf.String(), `maxlength="500"`)
}

func TestRendererEscapesUserContent(t *testing.T) {
	r, err := newRenderer()
	require.NoError(t, err)

	data := struct {
		Title string
		Error string
		Email string
	}{
		Title: "Welcome Back",
		Error: `<script>alert("x")</script>`,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "login.html", data, nil))
	assert.NotContains(t, buf.String(), `<script>alert`)
}
