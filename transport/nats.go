package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/models"
	"slotwise/services/scheduling"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSTransport answers chat turns published as request/reply messages.
type NATSTransport struct {
	conn      *nats.Conn
	subject   string
	assistant scheduling.Assistant
	timeout   time.Duration
	logger    *zap.Logger
	sub       *nats.Subscription
}

// NewNATSTransport connects to NATS. timeout bounds each turn.
func NewNATSTransport(url, subject string, assistant scheduling.Assistant, timeout time.Duration, logger *zap.Logger) (*NATSTransport, error) {
	conn, err := nats.Connect(url,
		nats.Name("slotwise"),
		nats.Timeout(5*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Connected to NATS server", zap.String("url", url))

	return &NATSTransport{
		conn:      conn,
		subject:   subject,
		assistant: assistant,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

func (nt *NATSTransport) Start() error {
	sub, err := nt.conn.Subscribe(nt.subject, nt.handleChatRequest)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", nt.subject, err)
	}
	nt.sub = sub
	nt.logger.Info("Subscribed to subject", zap.String("subject", nt.subject))
	return nil
}

// Ping reports whether the connection is up.
func (nt *NATSTransport) Ping(context.Context) error {
	if !nt.conn.IsConnected() {
		return fmt.Errorf("nats connection status %v", nt.conn.Status())
	}
	return nil
}

func (nt *NATSTransport) handleChatRequest(msg *nats.Msg) {
	ctx := context.Background()
	if nt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, nt.timeout)
		defer cancel()
	}

	reply := HandleMessage(ctx, nt.assistant, msg.Data, nt.logger)
	if msg.Reply == "" {
		nt.logger.Warn("chat request without reply subject", zap.String("subject", msg.Subject))
		return
	}
	if err := msg.Respond(reply); err != nil {
		nt.logger.Error("failed to send response", zap.Error(err))
	}
}

// HandleMessage decodes one ChatRequest payload, runs the turn and encodes the
// ChatResponse. A malformed payload gets the generic reply with no suggestion.
func HandleMessage(ctx context.Context, assistant scheduling.Assistant, data []byte, logger *zap.Logger) []byte {
	var resp models.ChatResponse

	var req models.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("invalid chat request payload", zap.Error(err))
		resp = models.NewChatResponse(scheduling.MsgCouldNotUnderstand, nil)
	} else {
		resp = assistant.HandleTurn(ctx, req)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		// ChatResponse holds only strings and ints.
		logger.Error("failed to marshal response", zap.Error(err))
		return []byte(`{"response":"","last_suggested":null}`)
	}
	return out
}

func (nt *NATSTransport) Close() error {
	if nt.sub != nil {
		if err := nt.sub.Drain(); err != nil {
			nt.logger.Warn("failed to drain subscription", zap.Error(err))
		}
	}
	if nt.conn != nil {
		nt.conn.Close()
		nt.logger.Info("NATS connection closed")
	}
	return nil
}
