package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	telegram "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/ui"
	"github.com/smith3v/tg-phrase-reminder/pkg/wizard"
)

type recordedRequest struct {
	path        string
	contentType string
	body        []byte
}

// mockClient records every Bot API call and answers with a fixed response.
type mockClient struct {
	mu       sync.Mutex
	requests []recordedRequest
	response string
}

func newMockClient() *mockClient {
	return &mockClient{response: `{"ok":true,"result":{}}`}
}

func (m *mockClient) Do(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if err := req.Body.Close(); err != nil {
		return nil, fmt.Errorf("failed to close request body: %w", err)
	}

	m.mu.Lock()
	m.requests = append(m.requests, recordedRequest{
		path:        req.URL.Path,
		contentType: req.Header.Get("Content-Type"),
		body:        body,
	})
	response := m.response
	m.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(response)),
		Header:     make(http.Header),
	}, nil
}

func (m *mockClient) last(t *testing.T) recordedRequest {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		t.Fatalf("expected at least one recorded request")
	}
	return m.requests[len(m.requests)-1]
}

func (m *mockClient) lastRequestBody(t *testing.T) string {
	t.Helper()
	return string(m.last(t).body)
}

// lastMultipartField returns the value and file name of a form field of the
// last request.
func (m *mockClient) lastMultipartField(t *testing.T, fieldName string) (string, string) {
	t.Helper()
	req := m.last(t)

	mediaType, params, err := mime.ParseMediaType(req.contentType)
	if err != nil {
		t.Fatalf("failed to parse media type: %v", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		t.Fatalf("unexpected media type: %s", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(req.body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read multipart part: %v", err)
		}
		if part.FormName() != fieldName {
			continue
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("failed to read field %q: %v", fieldName, err)
		}
		return string(data), part.FileName()
	}
	t.Fatalf("field %q not found in request to %s", fieldName, req.path)
	return "", ""
}

func (m *mockClient) lastMessageText(t *testing.T) string {
	t.Helper()
	text, _ := m.lastMultipartField(t, "text")
	return text
}

func newTestTelegramBot(t *testing.T, client *mockClient) *telegram.Bot {
	t.Helper()
	b, err := telegram.New("test-token",
		telegram.WithSkipGetMe(),
		telegram.WithHTTPClient(time.Second, client),
	)
	if err != nil {
		t.Fatalf("failed to create test bot: %v", err)
	}
	return b
}

func newTestUpdate(text string, userID int64) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
			Text: text,
		},
	}
}

func newTestCallbackUpdate(data string, userID, chatID int64, messageID int) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "callback-1",
			From: models.User{ID: userID},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Type: models.MaybeInaccessibleMessageTypeMessage,
				Message: &models.Message{
					ID:   messageID,
					Chat: models.Chat{ID: chatID, Type: models.ChatTypePrivate},
				},
			},
		},
	}
}

// newTestAnswerUpdate is the button press of a wizard answer in the user's
// private chat.
func newTestAnswerUpdate(t *testing.T, step wizard.Step, value string, userID int64) *models.Update {
	t.Helper()
	data, err := ui.BuildAnswerCallback(step, value)
	if err != nil {
		t.Fatalf("failed to build callback data for %s=%s: %v", step, value, err)
	}
	return newTestCallbackUpdate(data, userID, userID, 10)
}
