package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/conversation"
	"tripmind/internal/domain/itinerary"
	"tripmind/internal/domain/preference"
	"tripmind/internal/domain/user"
	"tripmind/internal/utils/platformerrors"
)

// CompletionClient generates free-form assistant prose. Everything with
// exact semantics (clarifying questions, confirmations, lists) is rendered
// from templates instead; the model only writes color.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config carries the dialogue policy knobs.
type Config struct {
	ClarificationCap   int
	DefaultBudgetVND   int64
	DefaultTripDays    int
	DefaultDestination string
	FlightOrigin       string
}

// Service runs the planning dialogue: it classifies each message, drives
// the state machine, and produces exactly one reply per turn.
type Service struct {
	cfg           Config
	conversations *conversation.Service
	users         *user.Service
	preferences   *preference.Service
	retriever     candidate.Retriever
	synthesizer   *itinerary.Synthesizer
	completion    CompletionClient
	sessions      *SessionStore
	guard         *TurnGuard
	now           func() time.Time
}

func NewService(
	cfg Config,
	conversations *conversation.Service,
	users *user.Service,
	preferences *preference.Service,
	retriever candidate.Retriever,
	synthesizer *itinerary.Synthesizer,
	completion CompletionClient,
	sessions *SessionStore,
) *Service {
	return &Service{
		cfg:           cfg,
		conversations: conversations,
		users:         users,
		preferences:   preferences,
		retriever:     retriever,
		synthesizer:   synthesizer,
		completion:    completion,
		sessions:      sessions,
		guard:         NewTurnGuard(),
		now:           time.Now,
	}
}

// TurnResult is the outcome of one dialogue turn. Exactly one of the shape
// flags applies; the handler maps them onto the response union.
type TurnResult struct {
	Conversation          *conversation.Conversation
	Reply                 string
	RequiresClarification bool
	RequiresConfirmation  bool
	IsList                bool
	ListCategory          candidate.Category
	Candidates            []candidate.Candidate
	Itinerary             *itinerary.Itinerary
}

// HandleTurn processes one user message. An empty conversationID starts a
// new conversation. A message arriving while an older turn of the same
// conversation is still generating cancels that older turn; the superseded
// turn keeps its user message but never persists an assistant reply.
func (s *Service) HandleTurn(ctx context.Context, userID uint, conversationID, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message must not be empty", nil, "")
	}

	conv, err := s.resolveConversation(ctx, userID, conversationID, message)
	if err != nil {
		return nil, err
	}

	session, err := s.resolveSession(ctx, conv)
	if err != nil {
		return nil, err
	}

	turnCtx, done := s.guard.Begin(ctx, conv.PublicID)
	defer done()

	// The user message survives even if this turn gets superseded, so it is
	// written with the request context, not the cancellable turn context.
	if _, err := s.conversations.AppendMessage(ctx, conv, conversation.MessageRoleUser, message, nil); err != nil {
		return nil, err
	}

	intent := Classify(message, session.State)

	// work on a copy; the live session only changes after the reply persists
	next := *session

	var result *TurnResult
	switch it := intent.(type) {
	case Unrelated:
		// small talk never loses dialogue position; state stays put
		result, err = s.handleUnrelated(turnCtx, message)
	case ListRequest:
		result, err = s.handleList(turnCtx, userID, it.Category, message, &next)
	case ConfirmationAnswer:
		result, err = s.handleConfirmation(turnCtx, userID, it.Accepted, &next)
	case ClarificationAnswer:
		result, err = s.handleSlotProgress(turnCtx, userID, message, &next, preference.SignalExplicitAsk)
	case ItineraryRequest:
		signal := preference.SignalExplicitAsk
		if it.Modify {
			s.seedFromLastItinerary(&next)
			signal = preference.SignalPlanModified
		}
		result, err = s.handleSlotProgress(turnCtx, userID, message, &next, signal)
	default:
		err = platformerrors.NewError(turnCtx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"unhandled intent", nil, "")
	}
	if err != nil {
		return nil, err
	}

	if err := s.persistReply(turnCtx, ctx, conv, result); err != nil {
		return nil, err
	}

	// renaming happens only for turns that actually delivered a plan
	if result.Itinerary != nil {
		title := fmt.Sprintf("%s - %d ngày", result.Itinerary.Destination, result.Itinerary.DurationDays)
		if err := s.conversations.SetTitle(ctx, conv, title); err != nil {
			return nil, err
		}
	}

	s.sessions.Put(conv.PublicID, &next)
	result.Conversation = conv
	return result, nil
}

// persistReply writes the assistant message. A superseded turn must not
// write: the turn context is checked immediately before the append.
func (s *Service) persistReply(turnCtx, ctx context.Context, conv *conversation.Conversation, result *TurnResult) error {
	if err := turnCtx.Err(); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"turn superseded by a newer message", err, "")
	}
	_, err := s.conversations.AppendMessage(ctx, conv, conversation.MessageRoleAssistant, result.Reply, result.Itinerary)
	return err
}

func (s *Service) resolveConversation(ctx context.Context, userID uint, conversationID, message string) (*conversation.Conversation, error) {
	if conversationID == "" {
		return s.conversations.Create(ctx, userID, message)
	}
	return s.conversations.GetByPublicIDAndUserID(ctx, conversationID, userID)
}

// resolveSession returns the live session, rebuilding a minimal one from
// persisted history when the in-memory copy expired.
func (s *Service) resolveSession(ctx context.Context, conv *conversation.Conversation) (*SessionContext, error) {
	if session := s.sessions.Get(conv.PublicID); session != nil {
		return session, nil
	}

	session := NewSessionContext()
	last, err := s.conversations.LastItinerary(ctx, conv)
	if err != nil {
		return nil, err
	}
	if last != nil {
		session.State = StateDelivered
		session.LastItinerary = last
		session.Slots = Slots{
			Destination: last.Destination,
			Days:        last.DurationDays,
			BudgetVND:   last.TotalBudgetVND,
		}
	}
	return session, nil
}

func (s *Service) seedFromLastItinerary(session *SessionContext) {
	if session.LastItinerary == nil {
		return
	}
	session.Slots = Slots{
		Destination: session.LastItinerary.Destination,
		Days:        session.LastItinerary.DurationDays,
		BudgetVND:   session.LastItinerary.TotalBudgetVND,
	}
}

// ===============================================
// Turn branches
// ===============================================

const completionSystemPrompt = "Bạn là trợ lý du lịch TripMind. Trả lời ngắn gọn, thân thiện, bằng tiếng Việt."

func (s *Service) handleUnrelated(ctx context.Context, message string) (*TurnResult, error) {
	prompt := fmt.Sprintf(
		"Người dùng nói: %q. Câu này không liên quan đến du lịch. Trả lời lịch sự và gợi ý rằng bạn có thể giúp lên kế hoạch cho một chuyến đi.",
		message)
	reply, err := s.completion.Complete(ctx, completionSystemPrompt, prompt)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "completion provider failed")
	}
	return &TurnResult{Reply: reply}, nil
}

func (s *Service) handleList(ctx context.Context, userID uint, category candidate.Category, message string, session *SessionContext) (*TurnResult, error) {
	slots := ParseSlots(message)
	destination := slots.Destination
	if destination == "" {
		destination = session.Slots.Destination
	}
	if destination == "" {
		destination = s.cfg.DefaultDestination
	}

	candidates, err := s.retrieveForList(ctx, category, destination)
	if err != nil {
		return nil, err
	}
	prefs, err := s.preferences.Vector(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidates = rankForList(candidates, prefs)

	if err := s.preferences.Record(ctx, userID, string(category), preference.SignalExplicitAsk); err != nil {
		return nil, err
	}

	if slots.Destination != "" {
		session.Slots.Destination = slots.Destination
	}
	if !CanTransition(session.State, StateListAnswered) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("invalid transition %s -> %s", session.State, StateListAnswered), nil, "")
	}
	session.State = StateListAnswered

	return &TurnResult{
		Reply:        renderList(category, destination, candidates),
		IsList:       true,
		ListCategory: category,
		Candidates:   candidates,
	}, nil
}

// listLimit caps how many entries a list answer carries.
const listLimit = 10

// rankForList orders candidates by rating plus learned preference match
// and keeps the top entries. Ties break by rating, then name, so the same
// pool always lists in the same order.
func rankForList(candidates []candidate.Candidate, prefs preference.Vector) []candidate.Candidate {
	ranked := make([]candidate.Candidate, len(candidates))
	copy(ranked, candidates)

	score := func(c candidate.Candidate) float64 {
		return c.Rating/5.0 + prefs.Get(string(c.Category))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > listLimit {
		ranked = ranked[:listLimit]
	}
	return ranked
}

func (s *Service) retrieveForList(ctx context.Context, category candidate.Category, destination string) ([]candidate.Candidate, error) {
	switch category {
	case candidate.CategoryHotel:
		checkIn := s.now().AddDate(0, 0, 7)
		return s.retriever.Hotels(ctx, destination, checkIn, checkIn.AddDate(0, 0, 2))
	case candidate.CategoryFlight:
		return s.retriever.Flights(ctx, s.cfg.FlightOrigin, destination, s.now().AddDate(0, 0, 7))
	default:
		return s.retriever.Places(ctx, destination, category)
	}
}

func (s *Service) handleConfirmation(ctx context.Context, userID uint, accepted bool, session *SessionContext) (*TurnResult, error) {
	if !accepted {
		if !CanTransition(session.State, StateAwaitingClarification) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				fmt.Sprintf("invalid transition %s -> %s", session.State, StateAwaitingClarification), nil, "")
		}
		session.State = StateAwaitingClarification
		return &TurnResult{
			Reply:                 "Không sao! Bạn muốn thay đổi điều gì: điểm đến, số ngày hay ngân sách?",
			RequiresClarification: true,
		}, nil
	}
	return s.generate(ctx, userID, session)
}

// handleSlotProgress merges freshly parsed slots and decides between asking
// the next clarifying question, falling back to defaults at the cap, and
// moving to confirmation.
func (s *Service) handleSlotProgress(ctx context.Context, userID uint, message string, session *SessionContext, signal preference.SignalType) (*TurnResult, error) {
	parsed := ParseSlots(message)
	session.Slots = session.Slots.Merge(parsed)

	for _, c := range parsed.Categories {
		if candidate.IsActivityCategory(c) {
			if err := s.preferences.Record(ctx, userID, string(c), signal); err != nil {
				return nil, err
			}
		}
	}

	missing := session.Slots.Missing()
	if len(missing) > 0 && session.ClarifyCount < s.cfg.ClarificationCap {
		session.ClarifyCount++
		if !CanTransition(session.State, StateAwaitingClarification) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				fmt.Sprintf("invalid transition %s -> %s", session.State, StateAwaitingClarification), nil, "")
		}
		session.State = StateAwaitingClarification
		return &TurnResult{
			Reply:                 clarifyingQuestion(missing[0]),
			RequiresClarification: true,
		}, nil
	}

	if len(missing) > 0 {
		s.fillDefaults(ctx, userID, session)
	}

	if !CanTransition(session.State, StateAwaitingConfirmation) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("invalid transition %s -> %s", session.State, StateAwaitingConfirmation), nil, "")
	}
	session.State = StateAwaitingConfirmation
	return &TurnResult{
		Reply: fmt.Sprintf(
			"Mình sẽ lên lịch trình %s %d ngày với ngân sách %s VND. Bạn xác nhận chứ?",
			session.Slots.Destination, session.Slots.Days, formatVND(session.Slots.BudgetVND)),
		RequiresConfirmation: true,
	}, nil
}

// fillDefaults closes the remaining open slots once the clarification cap
// is spent. The budget prefers the user's stored profile ceiling.
func (s *Service) fillDefaults(ctx context.Context, userID uint, session *SessionContext) {
	if session.Slots.Destination == "" {
		session.Slots.Destination = s.cfg.DefaultDestination
	}
	if session.Slots.Days == 0 {
		session.Slots.Days = s.cfg.DefaultTripDays
	}
	if session.Slots.BudgetVND == 0 {
		session.Slots.BudgetVND = s.cfg.DefaultBudgetVND
		if profile, err := s.users.GetProfile(ctx, userID); err == nil && profile.BudgetMaxVND > 0 {
			session.Slots.BudgetVND = profile.BudgetMaxVND
		}
	}
}

// ===============================================
// Generation
// ===============================================

func (s *Service) generate(ctx context.Context, userID uint, session *SessionContext) (*TurnResult, error) {
	if !CanTransition(session.State, StateGenerating) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("invalid transition %s -> %s", session.State, StateGenerating), nil, "")
	}
	session.State = StateGenerating

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user profile")
	}
	prefs, err := s.preferences.Vector(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := activityCategoriesFor(session.Slots.Categories, prefs)
	pool, hotels, err := s.retrieveCandidates(ctx, session.Slots.Destination, categories, session.Slots.Days)
	if err != nil {
		return nil, err
	}

	startDate := s.now().AddDate(0, 0, 7)
	built := s.synthesizer.Build(itinerary.Input{
		Destination:         session.Slots.Destination,
		StartDate:           startDate,
		Days:                session.Slots.Days,
		BudgetVND:           session.Slots.BudgetVND,
		Style:               itinerary.SpendingStyle(profile.SpendingStyle),
		Energy:              itinerary.EnergyLevel(profile.EnergyLevel),
		Preferences:         prefs,
		RequestedCategories: session.Slots.Categories,
		Pool:                pool,
		Hotels:              hotels,
	})

	description, err := s.describeItinerary(ctx, built)
	if err != nil {
		return nil, err
	}

	session.State = StateDelivered
	session.LastItinerary = built
	session.ClarifyCount = 0

	return &TurnResult{Reply: description, Itinerary: built}, nil
}

// retrieveCandidates fans out one provider call per category plus the hotel
// search, all in parallel. Any provider failure fails the turn.
func (s *Service) retrieveCandidates(ctx context.Context, destination string, categories []candidate.Category, days int) (pool, hotels []candidate.Candidate, err error) {
	results := make([][]candidate.Candidate, len(categories))
	checkIn := s.now().AddDate(0, 0, 7)

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			found, err := s.retriever.Places(gctx, destination, category)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	g.Go(func() error {
		nights := days
		if nights < 1 {
			nights = 1
		}
		found, err := s.retriever.Hotels(gctx, destination, checkIn, checkIn.AddDate(0, 0, nights))
		if err != nil {
			return err
		}
		hotels = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "candidate retrieval failed")
	}

	for _, found := range results {
		pool = append(pool, found...)
	}
	return pool, hotels, nil
}

// activityCategoriesFor picks which categories to search: explicit requests
// win, then the user's strongest learned tags, then a broad default mix.
func activityCategoriesFor(requested []candidate.Category, prefs preference.Vector) []candidate.Category {
	var categories []candidate.Category
	for _, c := range requested {
		if candidate.IsActivityCategory(c) {
			categories = append(categories, c)
		}
	}
	if len(categories) > 0 {
		return categories
	}

	for _, tag := range prefs.Top(3) {
		c := candidate.Category(tag)
		if candidate.IsActivityCategory(c) && prefs.Get(tag) > 0 {
			categories = append(categories, c)
		}
	}
	if len(categories) >= 3 {
		return categories
	}

	for _, c := range []candidate.Category{candidate.CategoryFood, candidate.CategoryNature, candidate.CategoryCulture, candidate.CategoryEntertainment} {
		if !containsCategory(categories, c) {
			categories = append(categories, c)
		}
	}
	return categories
}

func containsCategory(list []candidate.Category, c candidate.Category) bool {
	for _, existing := range list {
		if existing == c {
			return true
		}
	}
	return false
}

func (s *Service) describeItinerary(ctx context.Context, it *itinerary.Itinerary) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Lịch trình %s, %d ngày, ngân sách %s VND.\n", it.Destination, it.DurationDays, formatVND(it.TotalBudgetVND))
	if it.Hotel != nil {
		fmt.Fprintf(&b, "Khách sạn: %s.\n", it.Hotel.Name)
	}
	for _, day := range it.Days {
		fmt.Fprintf(&b, "Ngày %d (%s):\n", day.DayNumber, day.Date)
		for _, activity := range day.Activities {
			fmt.Fprintf(&b, "- %s-%s %s\n", activity.StartTime, activity.EndTime, activity.Name)
		}
	}

	prompt := fmt.Sprintf(
		"Viết một đoạn mở đầu ngắn (2-3 câu) giới thiệu lịch trình dưới đây, rồi giữ nguyên phần danh sách:\n%s", b.String())
	intro, err := s.completion.Complete(ctx, completionSystemPrompt, prompt)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "completion provider failed")
	}
	return intro, nil
}

// ===============================================
// Templates
// ===============================================

func clarifyingQuestion(field string) string {
	switch field {
	case "destination":
		return "Bạn muốn đi đâu?"
	case "days":
		return "Bạn dự định đi mấy ngày?"
	default:
		return "Ngân sách của bạn khoảng bao nhiêu?"
	}
}

func renderList(category candidate.Category, destination string, candidates []candidate.Candidate) string {
	if len(candidates) == 0 {
		return fmt.Sprintf("Mình chưa tìm thấy gợi ý nào ở %s. Bạn thử địa điểm khác nhé?", destination)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s tại %s:\n", listHeading(category), destination)
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s", i+1, c.Name)
		if c.Rating > 0 {
			fmt.Fprintf(&b, " — %.1f★", c.Rating)
			if c.Votes > 0 {
				fmt.Fprintf(&b, " (%d đánh giá)", c.Votes)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func listHeading(category candidate.Category) string {
	switch category {
	case candidate.CategoryFood:
		return "Quán ăn gợi ý"
	case candidate.CategoryDrink:
		return "Quán cà phê gợi ý"
	case candidate.CategoryHotel:
		return "Khách sạn gợi ý"
	case candidate.CategoryFlight:
		return "Chuyến bay gợi ý"
	default:
		return "Gợi ý"
	}
}

// formatVND renders an amount with Vietnamese thousands separators.
func formatVND(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ".")
}
