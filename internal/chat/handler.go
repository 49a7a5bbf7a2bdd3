package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/medvoy/medvoy-platform/internal/relay"
	"github.com/medvoy/medvoy-platform/internal/upstream"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// ChatRequest is the inbound conversation payload.
type ChatRequest struct {
	Messages       []InboundMessage `json:"messages"`
	ConversationID string           `json:"conversationId,omitempty"`
}

// InboundMessage is one prior turn as the client submits it.
type InboundMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Handler serves the streaming chat endpoint and transcript reads.
type Handler struct {
	relay       *relay.Relay
	transcripts TranscriptStore
	logger      *logging.Logger
}

func NewHandler(r *relay.Relay, transcripts TranscriptStore, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{relay: r, transcripts: transcripts, logger: logger.Named("chat_handler")}
}

// Chat handles POST /chat: it opens the upstream stream and, once that
// succeeds, commits to an SSE response. Failures before that point return
// plain JSON errors the client can branch on.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	turns := make([]upstream.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, upstream.Message{Role: m.Role, Content: m.Content})
	}

	sess, err := h.relay.Open(r.Context(), turns)
	if err != nil {
		h.writeOpenError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("response writer does not support flushing")
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sink := &recordingSink{Sink: newSSESink(w, flusher)}
	sess.Run(sink)

	h.persistTranscript(r.Context(), req, string(sink.assistant))
}

func (h *Handler) writeOpenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, relay.ErrEmptyConversation), errors.Is(err, relay.ErrInvalidTurn):
		writeError(w, http.StatusBadRequest, "Messages array is required")
	case upstream.IsRateLimited(err):
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.")
	case upstream.IsQuotaExhausted(err):
		writeError(w, http.StatusPaymentRequired, "AI service credits exhausted. Please contact support.")
	case errors.Is(err, upstream.ErrNotConfigured):
		h.logger.Error("gateway credential missing")
		writeError(w, http.StatusInternalServerError, "AI service not configured")
	default:
		h.logger.Error("opening upstream stream failed", "error", err)
		writeError(w, http.StatusInternalServerError, "AI service error")
	}
}

// persistTranscript records the closing user turn and the relayed reply.
// Transcript writes are best-effort; the stream already succeeded.
func (h *Handler) persistTranscript(ctx context.Context, req ChatRequest, assistant string) {
	if h.transcripts == nil || req.ConversationID == "" {
		return
	}

	now := time.Now().UTC()
	var msgs []TranscriptMessage
	if last := req.Messages[len(req.Messages)-1]; last.Role == upstream.RoleUser {
		msgs = append(msgs, TranscriptMessage{Role: upstream.RoleUser, Content: last.Content, Timestamp: now})
	}
	if assistant != "" {
		msgs = append(msgs, TranscriptMessage{Role: upstream.RoleAssistant, Content: assistant, Timestamp: now})
	}

	if err := h.transcripts.Append(ctx, req.ConversationID, msgs...); err != nil {
		h.logger.Warn("transcript append failed", "conversation_id", req.ConversationID, "error", err)
	}
}

// History handles GET /chat/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")
	if conversationID == "" {
		writeError(w, http.StatusBadRequest, "conversationId is required")
		return
	}
	if h.transcripts == nil {
		writeJSON(w, http.StatusOK, map[string]any{"messages": []TranscriptMessage{}})
		return
	}

	msgs, err := h.transcripts.List(r.Context(), conversationID, 200)
	if err != nil {
		h.logger.Error("transcript read failed", "conversation_id", conversationID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
