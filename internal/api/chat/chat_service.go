package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/api/place"
	"github.com/FACorreiaa/tripmate-api/internal/api/poi"
	"github.com/FACorreiaa/tripmate-api/internal/api/states"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

var _ ChatService = (*ChatServiceImpl)(nil)

// ChatService turns one user message into a conversational reply.
type ChatService interface {
	Chat(ctx context.Context, req types.ChatRequest) types.ChatReply
}

type ChatServiceImpl struct {
	logger       *slog.Logger
	poiService   poi.POIService
	placeService place.PlaceService
}

func NewServiceImpl(poiService poi.POIService, placeService place.PlaceService, logger *slog.Logger) *ChatServiceImpl {
	return &ChatServiceImpl{
		logger:       logger,
		poiService:   poiService,
		placeService: placeService,
	}
}

// Chat always returns a non-empty message and at least a few suggestions.
// The session id is echoed, or minted when the caller did not send one.
func (s *ChatServiceImpl) Chat(ctx context.Context, req types.ChatRequest) types.ChatReply {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "Chat")
	defer span.End()

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	intent, reply := s.route(ctx, req.Message)
	reply.SessionID = sessionID
	span.SetAttributes(attribute.String("chat.intent", string(intent)))
	s.logger.InfoContext(ctx, "Chat reply composed",
		slog.String("session_id", sessionID),
		slog.String("intent", string(intent)),
		slog.Int("suggestions", len(reply.Suggestions)),
	)
	return reply
}

func (s *ChatServiceImpl) route(ctx context.Context, message string) (types.IntentType, types.ChatReply) {
	text := strings.TrimSpace(message)
	if text == "" {
		return types.IntentEmpty, PromptReply()
	}
	if states.IsGreeting(text) {
		return types.IntentGreeting, GreetingReply()
	}

	intent := ParseIntent(text)
	if intent.Subject == "" {
		return types.IntentEmpty, PromptReply()
	}

	if intent.Focus == types.FocusNone {
		if _, ok := states.Identify(intent.Subject); ok {
			return types.IntentState, s.stateReply(ctx, intent.Subject)
		}
		return types.IntentPlace, s.placeReply(ctx, placeName(intent.Subject), intent.Focus)
	}

	// A focused question about a state is answered as a place, but only when
	// the subject is the state itself and not a city named after it.
	name := placeName(intent.Subject)
	if token, ok := states.IdentifyExact(intent.Subject); ok {
		name = states.DisplayName(token)
	}
	return types.IntentPlace, s.placeReply(ctx, name, intent.Focus)
}

func (s *ChatServiceImpl) stateReply(ctx context.Context, subject string) types.ChatReply {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "StateReply", trace.WithAttributes(
		attribute.String("chat.subject", subject),
	))
	defer span.End()

	result := s.poiService.ResolveState(ctx, subject)
	return StateReply(result.State, result.Destinations)
}

func (s *ChatServiceImpl) placeReply(ctx context.Context, name string, focus types.Focus) types.ChatReply {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "PlaceReply", trace.WithAttributes(
		attribute.String("chat.subject", name),
		attribute.String("chat.focus", string(focus)),
	))
	defer span.End()

	details, ok := s.placeService.ResolvePlace(ctx, name, focus)
	if !ok {
		return ApologyReply(name)
	}
	return PlaceReply(details, focus)
}
