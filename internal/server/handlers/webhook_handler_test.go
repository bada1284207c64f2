package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

type fakeMessaging struct {
	payloads []models.WebhookPayload
	outbound []models.OutboundMessageRequest
	err      error
}

func (f *fakeMessaging) VerifyWebhookToken(mode, token, challenge string) (string, error) {
	if mode != "subscribe" || token != "goats" {
		return "", errors.New("invalid verify token")
	}
	return challenge, nil
}

func (f *fakeMessaging) HandleWebhook(_ context.Context, payload models.WebhookPayload) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

func (f *fakeMessaging) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.outbound = append(f.outbound, req)
	return f.err
}

func newWebhookEngine(svc *fakeMessaging) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(svc, nil)
	r := gin.New()
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.Receive)
	r.POST("/send-message", h.SendMessage)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestVerify(t *testing.T) {
	r := newWebhookEngine(&fakeMessaging{})

	w := get(r, "/webhook?hub.mode=subscribe&hub.verify_token=goats&hub.challenge=42")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = get(r, "/webhook?hub.mode=subscribe&hub.verify_token=sheep&hub.challenge=42")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceive(t *testing.T) {
	svc := &fakeMessaging{}
	r := newWebhookEngine(svc)

	body := `{"object":"whatsapp_business_account","entry":[{"changes":[{"field":"messages","value":{"messages":[{"from":"573001112233","type":"text","text":{"body":"/herd"}}]}}]}]}`
	w := post(r, "/webhook", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.payloads, 1)
	assert.Equal(t, "/herd", svc.payloads[0].Entry[0].Changes[0].Value.Messages[0].Text.Body)
}

func TestReceiveAcknowledgesProcessingFailures(t *testing.T) {
	r := newWebhookEngine(&fakeMessaging{err: errors.New("send failed")})

	w := post(r, "/webhook", `{"object":"whatsapp_business_account"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceiveRejectsMalformedJSON(t *testing.T) {
	r := newWebhookEngine(&fakeMessaging{})

	w := post(r, "/webhook", `{"entry":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessage(t *testing.T) {
	svc := &fakeMessaging{}
	r := newWebhookEngine(svc)

	w := post(r, "/send-message", `{"to":"573001112233","message":"vet visit"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, svc.outbound, 1)
	assert.Equal(t, "vet visit", svc.outbound[0].Message)

	w = post(r, "/send-message", `{"to":"+57 300","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/send-message", `{"to":"573001112233"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/send-message", `{"to":"+573001112233","message":"hi"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "573001112233", svc.outbound[1].To)

	svc.err = errors.New("meta down")
	w = post(r, "/send-message", `{"to":"573001112233","message":"x"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
