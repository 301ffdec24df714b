package billing

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billpay/internal/models"
)

// DefaultFeedbackTTL is how long success and error messages stay visible.
const DefaultFeedbackTTL = 5 * time.Second

// Feedback holds at most one transient message.
// A scheduled clear only removes the message it was scheduled for, so an old timer
// never wipes a newer message.
type Feedback struct {
	mu      sync.Mutex
	current *models.Feedback
	timer   *time.Timer
}

// NewFeedback creates an empty holder.
func NewFeedback() *Feedback {
	return &Feedback{}
}

// Show replaces the current message. If ttl > 0 the message clears itself after ttl.
func (f *Feedback) Show(kind models.FeedbackKind, text string, ttl time.Duration) models.Feedback {
	msg := models.Feedback{
		ID:   uuid.NewString(),
		Kind: kind,
		Text: text,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.current = &msg
	if ttl > 0 {
		f.timer = time.AfterFunc(ttl, func() { f.clearIf(msg.ID) })
	}
	return msg
}

// Current returns the visible message, if any.
func (f *Feedback) Current() (models.Feedback, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return models.Feedback{}, false
	}
	return *f.current, true
}

// Clear removes whatever message is showing.
func (f *Feedback) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.current = nil
}

func (f *Feedback) clearIf(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current != nil && f.current.ID == id {
		f.current = nil
		f.timer = nil
	}
}
