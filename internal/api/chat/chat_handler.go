package chat

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/api"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

type ChatHandler struct {
	chatService ChatService
	logger      *slog.Logger
}

func NewChatHandler(chatService ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat answers one message.
// POST /chat {"message": "...", "session_id": "..."}
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "Chat", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Chat"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		// a missing or malformed body is treated like an empty message
		l.DebugContext(ctx, "Failed to decode chat body", slog.Any("error", err))
	}
	if strings.TrimSpace(req.Message) == "" {
		api.ErrorResponseWithHint(w, r, http.StatusBadRequest, "empty_message", promptMessage)
		return
	}

	reply := h.chatService.Chat(ctx, req)
	api.WriteJSONResponse(w, r, http.StatusOK, reply)
}
