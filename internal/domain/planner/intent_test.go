package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripmind/internal/domain/candidate"
)

func TestClassify_ItineraryRequest(t *testing.T) {
	intent := Classify("5 triệu đi Đà Lạt 3 ngày", StateInitial)
	req, ok := intent.(ItineraryRequest)
	assert.True(t, ok)
	assert.False(t, req.Modify)

	intent = Classify("lên lịch trình du lịch giúp mình", StateInitial)
	_, ok = intent.(ItineraryRequest)
	assert.True(t, ok)

	// vague but travel-flavored still counts
	intent = Classify("đi chơi thôi", StateInitial)
	_, ok = intent.(ItineraryRequest)
	assert.True(t, ok)
}

func TestClassify_ListRequest(t *testing.T) {
	intent := Classify("quán cà phê ở Đà Lạt", StateInitial)
	list, ok := intent.(ListRequest)
	assert.True(t, ok)
	assert.Equal(t, candidate.CategoryDrink, list.Category)

	intent = Classify("gợi ý nhà hàng ngon", StateDelivered)
	list, ok = intent.(ListRequest)
	assert.True(t, ok)
	assert.Equal(t, candidate.CategoryFood, list.Category)

	intent = Classify("tìm khách sạn gần trung tâm", StateInitial)
	list, ok = intent.(ListRequest)
	assert.True(t, ok)
	assert.Equal(t, candidate.CategoryHotel, list.Category)
}

func TestClassify_ListRequestVetoedByTripFraming(t *testing.T) {
	// a day count turns a category mention into a trip request
	intent := Classify("đi Đà Lạt 3 ngày ăn uống", StateInitial)
	_, ok := intent.(ItineraryRequest)
	assert.True(t, ok)

	intent = Classify("lịch trình ăn uống ở Huế", StateInitial)
	_, ok = intent.(ItineraryRequest)
	assert.True(t, ok)
}

func TestClassify_Unrelated(t *testing.T) {
	_, ok := Classify("thời tiết hôm nay thế nào", StateInitial).(Unrelated)
	assert.True(t, ok)

	_, ok = Classify("xin chào", StateInitial).(Unrelated)
	assert.True(t, ok)
}

func TestClassify_Confirmation(t *testing.T) {
	answer, ok := Classify("ok chốt luôn", StateAwaitingConfirmation).(ConfirmationAnswer)
	assert.True(t, ok)
	assert.True(t, answer.Accepted)

	answer, ok = Classify("thôi không đi nữa", StateAwaitingConfirmation).(ConfirmationAnswer)
	assert.True(t, ok)
	assert.False(t, answer.Accepted)

	// an adjustment instead of yes/no re-opens the slots
	_, ok = Classify("đổi thành 5 ngày nhé", StateAwaitingConfirmation).(ClarificationAnswer)
	assert.True(t, ok)
}

func TestClassify_ClarificationAnswer(t *testing.T) {
	_, ok := Classify("3 ngày", StateAwaitingClarification).(ClarificationAnswer)
	assert.True(t, ok)

	_, ok = Classify("khoảng 5 triệu", StateAwaitingClarification).(ClarificationAnswer)
	assert.True(t, ok)

	// off-topic mid-clarification stays off-topic
	_, ok = Classify("kể chuyện cười cho mình nghe", StateAwaitingClarification).(Unrelated)
	assert.True(t, ok)
}

func TestClassify_ModifyAfterDelivery(t *testing.T) {
	req, ok := Classify("sửa lại giúp mình, thêm ngày nữa", StateDelivered).(ItineraryRequest)
	assert.True(t, ok)
	assert.True(t, req.Modify)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateInitial, StateAwaitingClarification))
	assert.True(t, CanTransition(StateAwaitingConfirmation, StateGenerating))
	assert.True(t, CanTransition(StateGenerating, StateDelivered))
	assert.True(t, CanTransition(StateDelivered, StateGenerating))
	assert.True(t, CanTransition(StateDelivered, StateListAnswered))

	assert.False(t, CanTransition(StateInitial, StateGenerating))
	assert.False(t, CanTransition(StateInitial, StateDelivered))
	assert.False(t, CanTransition(StateGenerating, StateListAnswered))
}
