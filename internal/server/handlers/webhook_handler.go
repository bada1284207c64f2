package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/domain/models"
	service "github.com/mamadbah2/goatherd/internal/service/whatsapp"
)

// verifyQuery is Meta's subscription challenge.
type verifyQuery struct {
	Mode      string `form:"hub.mode"`
	Token     string `form:"hub.verify_token"`
	Challenge string `form:"hub.challenge"`
}

// WebhookHandler serves the WhatsApp webhook and the manual send endpoint.
type WebhookHandler struct {
	svc    service.MessagingService
	logger *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger}
}

// Verify answers the subscription challenge with the challenge value.
func (h *WebhookHandler) Verify(c *gin.Context) {
	var q verifyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, "bad verification query")
		return
	}

	challenge, err := h.svc.VerifyWebhookToken(q.Mode, q.Token, q.Challenge)
	if err != nil {
		h.logger.Warn("webhook verification refused", zap.String("mode", q.Mode), zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

// Receive answers the herd commands in a webhook callback. Meta retries any
// non-2xx answer, so processing failures are logged and acknowledged.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("webhook processing failed", zap.Int("entries", len(payload.Entry)), zap.Error(err))
	}

	c.Status(http.StatusOK)
}

// SendMessage pushes a manual message to a WhatsApp number given in
// international format without the plus sign.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to and message are required"})
		return
	}
	req.To = strings.TrimPrefix(strings.TrimSpace(req.To), "+")
	if !isPhoneNumber(req.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a phone number"})
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("manual send failed", zap.String("to", req.To), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func isPhoneNumber(s string) bool {
	if len(s) < 8 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
