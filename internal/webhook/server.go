// Package webhook exposes the Messenger entry point: webhook verification,
// signed event intake, and outbound message delivery.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/casewise/intake/internal/model"
	"github.com/casewise/intake/internal/session"
)

const signatureHeader = "X-Hub-Signature-256"

// Server receives Messenger webhook events and routes each sender's messages
// through their interview session.
type Server struct {
	cfg      model.WebhookConfig
	sessions *session.Registry
	sender   Sender
	logger   *zap.Logger
}

// NewServer wires the webhook endpoints around a session registry and an
// outbound sender.
func NewServer(cfg model.WebhookConfig, sessions *session.Registry, sender Sender, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, sessions: sessions, sender: sender, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/webhook", s.handleVerify).Methods(http.MethodGet)
	r.HandleFunc("/webhook", s.handleEvent).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving the webhook until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("webhook server listening", zap.String("addr", s.cfg.ListenAddr))

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// handleVerify answers the platform's subscription challenge.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && token == s.cfg.VerifyToken {
		s.logger.Info("webhook verified")
		fmt.Fprint(w, challenge)
		return
	}

	s.logger.Warn("webhook verification failed", zap.String("mode", mode))
	http.Error(w, "verification failed", http.StatusForbidden)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":        "healthy",
		"live_sessions": s.sessions.Count(),
	})
}

// handleEvent validates the payload signature and dispatches each message to
// its sender's session.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}

	if !s.validSignature(body, r.Header.Get(signatureHeader)) {
		s.logger.Warn("invalid event signature")
		http.Error(w, "invalid signature", http.StatusForbidden)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.Warn("malformed event payload", zap.Error(err))
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if event.Object != "page" {
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, entry := range event.Entry {
		for _, msg := range entry.Messaging {
			if msg.Message.Text == "" || msg.Message.IsEcho {
				continue
			}
			s.dispatch(r.Context(), msg.Sender.ID, msg.Message.Text)
		}
	}

	// the platform expects a prompt 200 regardless of processing outcome
	fmt.Fprint(w, "EVENT_RECEIVED")
}

// validSignature checks the request HMAC. An empty configured secret skips
// verification, for local development.
func (s *Server) validSignature(body []byte, header string) bool {
	if s.cfg.AppSecret == "" {
		s.logger.Warn("app secret not configured, skipping signature verification")
		return true
	}

	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.cfg.AppSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}

// dispatch runs one inbound message through the sender's interview and emits
// the resulting outbound messages.
func (s *Server) dispatch(ctx context.Context, senderID, text string) {
	sess, isNew := s.sessions.Get(senderID)
	if isNew {
		question, _ := sess.Machine.NextPrompt()
		s.reply(ctx, senderID, question)
		return
	}
	if !sess.Active {
		return
	}
	if sess.HandledByAgent {
		s.reply(ctx, senderID, "Your message has been received. An agent will respond shortly.")
		return
	}

	reply := sess.Machine.ProcessMessage(ctx, text)

	switch {
	case reply.Error != "":
		s.reply(ctx, senderID, reply.Error)

	case reply.Help != "":
		s.reply(ctx, senderID, reply.Help)

	case reply.Back:
		question, _ := sess.Machine.NextPrompt()
		s.reply(ctx, senderID, "Let's go back to a previous question. "+question)

	case reply.Eligible != nil && !*reply.Eligible:
		s.reply(ctx, senderID, reply.Reason)
		s.sessions.HandOff(senderID, "case ineligible, needs human review")

	case reply.EndChat:
		s.reply(ctx, senderID, reply.Farewell)
		s.sessions.End(senderID)

	default:
		question, isControl := sess.Machine.NextPrompt()
		if isControl {
			s.reply(ctx, senderID, question)
			return
		}
		if sess.Machine.CurrentPhase() == model.PhaseComplete {
			s.reply(ctx, senderID, question)
			s.sessions.HandOff(senderID, "interview complete, ready for consultation")
			return
		}
		if reply.Sympathy != "" {
			question = reply.Sympathy + " " + question
		}
		s.reply(ctx, senderID, question)
	}
}

func (s *Server) reply(ctx context.Context, recipientID, text string) {
	if text == "" {
		return
	}
	if err := s.sender.Send(ctx, recipientID, text); err != nil {
		s.logger.Error("could not send message",
			zap.String("recipient", recipientID),
			zap.Error(err))
	}
}

// webhookEvent mirrors the Messenger page-event payload.
type webhookEvent struct {
	Object string `json:"object"`
	Entry  []struct {
		ID        string `json:"id"`
		Time      int64  `json:"time"`
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Message struct {
				MID    string `json:"mid"`
				Text   string `json:"text"`
				IsEcho bool   `json:"is_echo"`
			} `json:"message"`
		} `json:"messaging"`
	} `json:"entry"`
}
