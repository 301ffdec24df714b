package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billpay/internal/models"
)

func TestFeedback_AutoClears(t *testing.T) {
	f := NewFeedback()
	f.Show(models.FeedbackSuccess, "Payment successful!", 20*time.Millisecond)

	got, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, "Payment successful!", got.Text)

	assert.Eventually(t, func() bool {
		_, ok := f.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestFeedback_OldTimerDoesNotClearNewerMessage(t *testing.T) {
	f := NewFeedback()
	f.Show(models.FeedbackError, "first", 20*time.Millisecond)
	second := f.Show(models.FeedbackInfo, "second", 0)

	time.Sleep(80 * time.Millisecond)

	got, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestFeedback_StaleClearIsIgnored(t *testing.T) {
	f := NewFeedback()
	first := f.Show(models.FeedbackSuccess, "first", 0)
	second := f.Show(models.FeedbackSuccess, "second", 0)

	f.clearIf(first.ID)

	got, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFeedback_Clear(t *testing.T) {
	f := NewFeedback()
	f.Show(models.FeedbackInfo, "Processing payment...", time.Hour)
	f.Clear()
	_, ok := f.Current()
	assert.False(t, ok)
}
