package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/config"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/service/commands"
	"github.com/mamadbah2/goatherd/internal/service/reporting"
	client "github.com/mamadbah2/goatherd/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService answers herd commands over the WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	dispatcher commands.Dispatcher
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, dispatcher commands.Dispatcher, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook answers every message in the payload. It keeps going after a
// failed message and returns the first error.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	text := extractMessageText(msg)
	if text == "" {
		s.logger.Debug("ignoring message without text", zap.String("type", msg.Type), zap.String("from", msg.From))
		return nil
	}

	cmd := models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	body, err := s.dispatcher.HandleCommand(ctx, cmd, msg.From)
	if err != nil {
		reply, ok := replyForError(err)
		if !ok {
			return fmt.Errorf("command %s: %w", cmd.Type, err)
		}
		body = reply.String()
	}

	return s.send(ctx, msg.From, body, false)
}

// SendOutbound lets internal operators push quick notifications via HTTP.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	return s.send(ctx, req.To, req.Message, req.PreviewURL)
}

func (s *MetaWhatsAppService) send(ctx context.Context, to, body string, preview bool) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         to,
		Body:       body,
		PreviewURL: preview,
	})
	return err
}

// replyForError turns user mistakes into a help reply. Other errors are not
// answered.
func replyForError(err error) (models.CommandReply, bool) {
	switch {
	case errors.Is(err, commands.ErrUnsupportedCommand):
		return models.CommandReply{Title: "Unknown command", Message: commands.HelpText}, true
	case errors.Is(err, commands.ErrInvalidArguments):
		return models.CommandReply{Title: "Missing animal id", Message: "Use /animal <id> or /lactation <id>."}, true
	case errors.Is(err, reporting.ErrAnimalNotFound):
		return models.CommandReply{Title: "Animal not found", Message: "Check the id against the Animals sheet."}, true
	}
	return models.CommandReply{}, false
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return msg.Text.Body
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}
