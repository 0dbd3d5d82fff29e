package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/conversation"
	"tripmind/internal/domain/itinerary"
	"tripmind/internal/domain/preference"
	"tripmind/internal/domain/user"
	"tripmind/internal/utils/platformerrors"
)

// ===============================================
// Mocks
// ===============================================

type memConversationRepo struct {
	mu       sync.Mutex
	nextID   uint
	convs    map[uint]*conversation.Conversation
	messages map[uint][]conversation.Message
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{
		nextID:   1,
		convs:    make(map[uint]*conversation.Conversation),
		messages: make(map[uint][]conversation.Message),
	}
}

func (r *memConversationRepo) Create(_ context.Context, conv *conversation.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv.ID = r.nextID
	r.nextID++
	copied := *conv
	r.convs[conv.ID] = &copied
	return nil
}

func (r *memConversationRepo) FindByPublicIDAndUserID(_ context.Context, publicID string, userID uint) (*conversation.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range r.convs {
		if conv.PublicID == publicID && conv.UserID == userID {
			copied := *conv
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memConversationRepo) FindByUserID(_ context.Context, userID uint) ([]*conversation.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*conversation.Conversation
	for _, conv := range r.convs {
		if conv.UserID == userID {
			copied := *conv
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memConversationRepo) Update(_ context.Context, conv *conversation.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *conv
	r.convs[conv.ID] = &copied
	return nil
}

func (r *memConversationRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.convs, id)
	delete(r.messages, id)
	return nil
}

func (r *memConversationRepo) AddMessage(_ context.Context, conversationID uint, message *conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[conversationID] = append(r.messages[conversationID], *message)
	return nil
}

func (r *memConversationRepo) GetMessages(_ context.Context, conversationID uint) ([]conversation.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]conversation.Message(nil), r.messages[conversationID]...), nil
}

type memUserRepo struct {
	users map[uint]*user.User
}

func (r *memUserRepo) FindByExternalID(_ context.Context, externalID string) (*user.User, error) {
	for _, u := range r.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	u.ID = uint(len(r.users) + 1)
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u *user.User) (*user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

type memSignalRepo struct {
	mu      sync.Mutex
	signals []preference.Signal
}

func (r *memSignalRepo) Append(_ context.Context, signal *preference.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, *signal)
	return nil
}

func (r *memSignalRepo) FindByUserID(_ context.Context, userID uint) ([]preference.Signal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []preference.Signal
	for _, s := range r.signals {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

type stubRetriever struct {
	placesErr error
	places    []candidate.Candidate
}

func (r *stubRetriever) Places(_ context.Context, _ string, category candidate.Category) ([]candidate.Candidate, error) {
	if r.placesErr != nil {
		return nil, r.placesErr
	}
	if r.places != nil {
		return r.places, nil
	}
	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta"}
	result := make([]candidate.Candidate, 0, len(names))
	for i, name := range names {
		result = append(result, candidate.Candidate{
			Name:             name + " " + string(category),
			Category:         category,
			Latitude:         16.06 + float64(i)*0.01,
			Longitude:        108.22,
			Rating:           4.5 - float64(i)*0.1,
			Votes:            1000 - i*100,
			PriceLevel:       2,
			EstimatedCostVND: 150_000,
			DurationMinutes:  candidate.DefaultDurationMinutes(category),
		})
	}
	return result, nil
}

func (r *stubRetriever) Hotels(_ context.Context, _ string, _, _ time.Time) ([]candidate.Candidate, error) {
	return []candidate.Candidate{
		{Name: "Hotel Central", Category: candidate.CategoryHotel, Rating: 4.6, Votes: 800, EstimatedCostVND: 700_000},
		{Name: "Hotel Budget", Category: candidate.CategoryHotel, Rating: 4.0, Votes: 300, EstimatedCostVND: 350_000},
	}, nil
}

func (r *stubRetriever) Flights(_ context.Context, _, _ string, _ time.Time) ([]candidate.Candidate, error) {
	return []candidate.Candidate{
		{Name: "VN123", Category: candidate.CategoryFlight, EstimatedCostVND: 1_500_000},
	}, nil
}

type stubCompletion struct {
	reply   string
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (s *stubCompletion) Complete(_ context.Context, _, _ string) (string, error) {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// ===============================================
// Fixture
// ===============================================

type fixture struct {
	svc        *Service
	convRepo   *memConversationRepo
	signalRepo *memSignalRepo
	retriever  *stubRetriever
	completion *stubCompletion
	sessions   *SessionStore
	userID     uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	convRepo := newMemConversationRepo()
	signalRepo := &memSignalRepo{}
	retriever := &stubRetriever{}
	completion := &stubCompletion{reply: "Đây là lịch trình gợi ý cho bạn."}
	sessions := NewSessionStore(30 * time.Minute)

	userRepo := &memUserRepo{users: map[uint]*user.User{
		1: {ID: 1, ExternalID: "ext-1", EnergyLevel: "medium", SpendingStyle: "balanced"},
	}}

	svc := NewService(
		Config{
			ClarificationCap:   3,
			DefaultBudgetVND:   5_000_000,
			DefaultTripDays:    3,
			DefaultDestination: "Đà Nẵng",
			FlightOrigin:       "Hà Nội",
		},
		conversation.NewService(convRepo),
		user.NewService(userRepo),
		preference.NewService(signalRepo, 0),
		retriever,
		itinerary.NewSynthesizer(itinerary.DefaultWeights(), 30, 9, 0.10),
		completion,
		sessions,
	)

	return &fixture{
		svc:        svc,
		convRepo:   convRepo,
		signalRepo: signalRepo,
		retriever:  retriever,
		completion: completion,
		sessions:   sessions,
		userID:     1,
	}
}

func (f *fixture) assistantMessages(t *testing.T, conversationID uint) []conversation.Message {
	t.Helper()
	all, err := f.convRepo.GetMessages(context.Background(), conversationID)
	require.NoError(t, err)
	var assistant []conversation.Message
	for _, m := range all {
		if m.Role == conversation.MessageRoleAssistant {
			assistant = append(assistant, m)
		}
	}
	return assistant
}

// ===============================================
// Tests
// ===============================================

func TestHandleTurn_EmptyMessageRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.HandleTurn(context.Background(), f.userID, "", "   ")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestHandleTurn_OneShotRequestGoesToConfirmation(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "5 triệu đi Đà Lạt 3 ngày")
	require.NoError(t, err)
	require.NotNil(t, result.Conversation)

	assert.True(t, result.RequiresConfirmation)
	assert.False(t, result.RequiresClarification)
	assert.Contains(t, result.Reply, "Đà Lạt")
	assert.Contains(t, result.Reply, "3 ngày")
	assert.Contains(t, result.Reply, "5.000.000")

	session := f.sessions.Get(result.Conversation.PublicID)
	require.NotNil(t, session)
	assert.Equal(t, StateAwaitingConfirmation, session.State)
	assert.Equal(t, 0, session.ClarifyCount)
}

func TestHandleTurn_ConfirmationAcceptDeliversItinerary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.HandleTurn(ctx, f.userID, "", "5 triệu đi Đà Lạt 3 ngày")
	require.NoError(t, err)
	convID := first.Conversation.PublicID

	result, err := f.svc.HandleTurn(ctx, f.userID, convID, "ok chốt")
	require.NoError(t, err)

	require.NotNil(t, result.Itinerary)
	assert.Equal(t, "Đà Lạt", result.Itinerary.Destination)
	assert.Equal(t, 3, result.Itinerary.DurationDays)
	assert.Len(t, result.Itinerary.Days, 3)
	assert.Equal(t, f.completion.reply, result.Reply)

	session := f.sessions.Get(convID)
	require.NotNil(t, session)
	assert.Equal(t, StateDelivered, session.State)
	assert.Equal(t, 0, session.ClarifyCount)
	assert.NotNil(t, session.LastItinerary)

	// the delivered plan is snapshotted on the assistant message
	assistant := f.assistantMessages(t, result.Conversation.ID)
	require.Len(t, assistant, 2)
	assert.NotNil(t, assistant[1].Itinerary)

	// the conversation is renamed after delivery
	stored, err := f.convRepo.FindByPublicIDAndUserID(ctx, convID, f.userID)
	require.NoError(t, err)
	require.NotNil(t, stored.Title)
	assert.Equal(t, "Đà Lạt - 3 ngày", *stored.Title)
}

func TestHandleTurn_ConfirmationDeclineReopensSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.HandleTurn(ctx, f.userID, "", "5 triệu đi Đà Lạt 3 ngày")
	require.NoError(t, err)
	convID := first.Conversation.PublicID

	result, err := f.svc.HandleTurn(ctx, f.userID, convID, "thôi, chưa chốt")
	require.NoError(t, err)

	assert.True(t, result.RequiresClarification)
	assert.Nil(t, result.Itinerary)

	session := f.sessions.Get(convID)
	require.NotNil(t, session)
	assert.Equal(t, StateAwaitingClarification, session.State)
	// the gathered slots survive a decline
	assert.Equal(t, "Đà Lạt", session.Slots.Destination)
}

func TestHandleTurn_ClarificationFlowAsksInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.HandleTurn(ctx, f.userID, "", "tôi muốn đi du lịch")
	require.NoError(t, err)
	convID := result.Conversation.PublicID
	assert.True(t, result.RequiresClarification)
	assert.Equal(t, "Bạn muốn đi đâu?", result.Reply)

	result, err = f.svc.HandleTurn(ctx, f.userID, convID, "Đà Lạt")
	require.NoError(t, err)
	assert.True(t, result.RequiresClarification)
	assert.Equal(t, "Bạn dự định đi mấy ngày?", result.Reply)

	result, err = f.svc.HandleTurn(ctx, f.userID, convID, "3 ngày")
	require.NoError(t, err)
	assert.True(t, result.RequiresClarification)
	assert.Equal(t, "Ngân sách của bạn khoảng bao nhiêu?", result.Reply)

	session := f.sessions.Get(convID)
	require.NotNil(t, session)
	assert.Equal(t, 3, session.ClarifyCount)
}

func TestHandleTurn_ClarificationCapFallsBackToDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.HandleTurn(ctx, f.userID, "", "tôi muốn đi du lịch")
	require.NoError(t, err)
	convID := result.Conversation.PublicID

	_, err = f.svc.HandleTurn(ctx, f.userID, convID, "Đà Lạt")
	require.NoError(t, err)
	_, err = f.svc.HandleTurn(ctx, f.userID, convID, "3 ngày")
	require.NoError(t, err)

	// the cap is spent; a non-answer forces defaults instead of a 4th question
	result, err = f.svc.HandleTurn(ctx, f.userID, convID, "du lịch tiết kiệm thôi")
	require.NoError(t, err)

	assert.True(t, result.RequiresConfirmation)
	assert.Contains(t, result.Reply, "5.000.000")

	session := f.sessions.Get(convID)
	require.NotNil(t, session)
	assert.Equal(t, int64(5_000_000), session.Slots.BudgetVND)
}

func TestHandleTurn_BudgetDefaultPrefersProfileCeiling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// profile carries a stated budget ceiling
	f.svc.users = user.NewService(&memUserRepo{users: map[uint]*user.User{
		1: {ID: 1, ExternalID: "ext-1", EnergyLevel: "medium", SpendingStyle: "balanced", BudgetMaxVND: 8_000_000},
	}})

	result, err := f.svc.HandleTurn(ctx, f.userID, "", "tôi muốn đi du lịch Đà Lạt 3 ngày")
	require.NoError(t, err)
	convID := result.Conversation.PublicID

	_, err = f.svc.HandleTurn(ctx, f.userID, convID, "du lịch thoải mái")
	require.NoError(t, err)
	_, err = f.svc.HandleTurn(ctx, f.userID, convID, "du lịch vui vẻ")
	require.NoError(t, err)
	result, err = f.svc.HandleTurn(ctx, f.userID, convID, "du lịch đi nào")
	require.NoError(t, err)

	assert.True(t, result.RequiresConfirmation)
	assert.Contains(t, result.Reply, "8.000.000")
}

func TestHandleTurn_ListRequest(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "quán cà phê ở Đà Lạt")
	require.NoError(t, err)

	assert.True(t, result.IsList)
	assert.Equal(t, candidate.CategoryDrink, result.ListCategory)
	assert.Len(t, result.Candidates, 6)
	assert.Contains(t, result.Reply, "Đà Lạt")

	// the ask is recorded as a preference signal
	signals, err := f.signalRepo.FindByUserID(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, "drink", signals[0].Tag)
	assert.Equal(t, preference.SignalExplicitAsk, signals[0].Type)

	session := f.sessions.Get(result.Conversation.PublicID)
	require.NotNil(t, session)
	assert.Equal(t, StateListAnswered, session.State)
}

func TestHandleTurn_ListRanksByRating(t *testing.T) {
	f := newFixture(t)

	// provider returns the pool worst-first; the answer must re-rank it
	f.retriever.places = []candidate.Candidate{
		{Name: "Worst Cafe", Category: candidate.CategoryDrink, Rating: 1.0},
		{Name: "Bad Cafe", Category: candidate.CategoryDrink, Rating: 2.0},
		{Name: "Mid Cafe", Category: candidate.CategoryDrink, Rating: 3.0},
		{Name: "Okay Cafe", Category: candidate.CategoryDrink, Rating: 4.0},
		{Name: "Good Cafe", Category: candidate.CategoryDrink, Rating: 5.0},
		{Name: "Best Cafe", Category: candidate.CategoryDrink, Rating: 6.0},
	}

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "quán cà phê ở Đà Lạt")
	require.NoError(t, err)

	require.Len(t, result.Candidates, 6)
	assert.Equal(t, "Best Cafe", result.Candidates[0].Name)
	assert.Equal(t, "Worst Cafe", result.Candidates[5].Name)
	assert.Contains(t, result.Reply, "1. Best Cafe")
}

func TestHandleTurn_ListCapsAtTen(t *testing.T) {
	f := newFixture(t)

	pool := make([]candidate.Candidate, 0, 12)
	for i := 0; i < 12; i++ {
		pool = append(pool, candidate.Candidate{
			Name:     fmt.Sprintf("Cafe %02d", i),
			Category: candidate.CategoryDrink,
			Rating:   3.0 + float64(i)*0.1,
		})
	}
	f.retriever.places = pool

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "quán cà phê ở Đà Lạt")
	require.NoError(t, err)

	require.Len(t, result.Candidates, 10)
	// the two lowest-rated entries fall off the end
	assert.Equal(t, "Cafe 11", result.Candidates[0].Name)
	assert.Equal(t, "Cafe 02", result.Candidates[9].Name)
}

func TestRankForList_PreferenceMatchAndTies(t *testing.T) {
	pool := []candidate.Candidate{
		{Name: "Bánh Mì B", Category: candidate.CategoryFood, Rating: 4.0},
		{Name: "Bánh Mì A", Category: candidate.CategoryFood, Rating: 4.0},
		{Name: "Cafe Sáng", Category: candidate.CategoryDrink, Rating: 4.5},
	}

	// a strong drink affinity outranks the slightly higher food ratings
	ranked := rankForList(pool, preference.Vector{"drink": 1.0})
	assert.Equal(t, "Cafe Sáng", ranked[0].Name)

	// equal score and rating fall back to name order
	ranked = rankForList(pool, preference.Vector{})
	assert.Equal(t, "Cafe Sáng", ranked[0].Name)
	assert.Equal(t, "Bánh Mì A", ranked[1].Name)
	assert.Equal(t, "Bánh Mì B", ranked[2].Name)
}

func TestHandleTurn_ListWithoutDestinationUsesDefault(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "gợi ý nhà hàng ngon")
	require.NoError(t, err)

	assert.True(t, result.IsList)
	assert.Contains(t, result.Reply, "Đà Nẵng")
}

func TestHandleTurn_UnrelatedUsesCompletion(t *testing.T) {
	f := newFixture(t)
	f.completion.reply = "Mình là trợ lý du lịch, bạn muốn đi đâu chơi không?"

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "thời tiết hôm nay thế nào")
	require.NoError(t, err)

	assert.Equal(t, f.completion.reply, result.Reply)
	assert.Nil(t, result.Itinerary)
	assert.False(t, result.IsList)
}

func TestHandleTurn_CompletionFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture(t)
	f.completion.err = errors.New("provider unavailable")

	result, err := f.svc.HandleTurn(context.Background(), f.userID, "", "thời tiết hôm nay thế nào")
	require.Error(t, err)
	assert.Nil(t, result)

	// no assistant message, no session commit
	var convID uint
	for id := range f.convRepo.convs {
		convID = id
	}
	assert.Empty(t, f.assistantMessages(t, convID))
}

func TestHandleTurn_RetrievalFailureFailsTurn(t *testing.T) {
	f := newFixture(t)
	f.retriever.placesErr = errors.New("places api down")
	ctx := context.Background()

	first, err := f.svc.HandleTurn(ctx, f.userID, "", "5 triệu đi Đà Lạt 3 ngày")
	require.NoError(t, err)

	_, err = f.svc.HandleTurn(ctx, f.userID, first.Conversation.PublicID, "ok chốt")
	require.Error(t, err)

	// no assistant reply was persisted for the failed turn
	assistant := f.assistantMessages(t, first.Conversation.ID)
	assert.Len(t, assistant, 1)
}

func TestHandleTurn_SupersededTurnWritesNoReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.HandleTurn(ctx, f.userID, "", "5 triệu đi Đà Lạt 3 ngày")
	require.NoError(t, err)
	convID := first.Conversation.PublicID

	f.completion.started = make(chan struct{}, 1)
	f.completion.gate = make(chan struct{})

	errCh := make(chan error, 1)
	go func() {
		_, err := f.svc.HandleTurn(ctx, f.userID, convID, "ok chốt")
		errCh <- err
	}()

	// wait for the slow turn to reach the completion call
	<-f.completion.started
	f.completion.started = nil

	// the newer message supersedes the in-flight generation
	second, err := f.svc.HandleTurn(ctx, f.userID, convID, "đổi thành 5 ngày")
	require.NoError(t, err)
	assert.True(t, second.RequiresConfirmation)

	close(f.completion.gate)
	supersededErr := <-errCh
	require.Error(t, supersededErr)
	assert.True(t, platformerrors.IsErrorType(supersededErr, platformerrors.ErrorTypeConflict))

	// both user messages persisted; only the newer turn produced a reply
	all, err := f.convRepo.GetMessages(ctx, first.Conversation.ID)
	require.NoError(t, err)
	var userMsgs, assistantMsgs int
	for _, m := range all {
		switch m.Role {
		case conversation.MessageRoleUser:
			userMsgs++
		case conversation.MessageRoleAssistant:
			assistantMsgs++
		}
	}
	assert.Equal(t, 3, userMsgs)
	assert.Equal(t, 2, assistantMsgs)
}

func TestHandleTurn_SessionRehydratesFromHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.HandleTurn(ctx, f.userID, "", "5 triệu đi Đà Lạt 3 ngày")
	require.NoError(t, err)
	convID := first.Conversation.PublicID

	delivered, err := f.svc.HandleTurn(ctx, f.userID, convID, "ok chốt")
	require.NoError(t, err)
	require.NotNil(t, delivered.Itinerary)

	// the in-memory session expires; history brings the dialogue back
	f.sessions.Delete(convID)

	result, err := f.svc.HandleTurn(ctx, f.userID, convID, "sửa lại thành 5 ngày nhé")
	require.NoError(t, err)
	assert.True(t, result.RequiresConfirmation)
	assert.Contains(t, result.Reply, "5 ngày")
	assert.Contains(t, result.Reply, "Đà Lạt")
}

func TestSessionStore_Sweep(t *testing.T) {
	store := NewSessionStore(time.Millisecond)
	store.Put("conv_a", NewSessionContext())
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 0, store.Sweep())
	assert.Nil(t, store.Get("conv_a"))
}

func TestTurnGuard_NewTurnCancelsPrevious(t *testing.T) {
	guard := NewTurnGuard()

	ctx1, done1 := guard.Begin(context.Background(), "conv_a")
	ctx2, done2 := guard.Begin(context.Background(), "conv_a")
	defer done1()
	defer done2()

	assert.Error(t, ctx1.Err())
	assert.NoError(t, ctx2.Err())

	// a different conversation is unaffected
	ctx3, done3 := guard.Begin(context.Background(), "conv_b")
	defer done3()
	assert.NoError(t, ctx3.Err())
	assert.NoError(t, ctx2.Err())
}
