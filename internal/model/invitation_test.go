package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    string
		expiresAt time.Time
		want      string
	}{
		{"sent and open", StatusSent, now.Add(time.Hour), StatusSent},
		{"sent past expiry reads expired", StatusSent, now.Add(-time.Hour), StatusExpired},
		{"sent exactly at expiry reads expired", StatusSent, now, StatusExpired},
		{"accepted past expiry reads expired", StatusAccepted, now.Add(-time.Hour), StatusExpired},
		{"completed never expires", StatusCompleted, now.Add(-time.Hour), StatusCompleted},
		{"stored expired stays expired", StatusExpired, now.Add(time.Hour), StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invitation{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, inv.EffectiveStatus(now))
		})
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := [][2]string{
		{StatusSent, StatusAccepted},
		{StatusSent, StatusCompleted},
		{StatusSent, StatusExpired},
		{StatusAccepted, StatusCompleted},
		{StatusAccepted, StatusExpired},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]string{
		{StatusAccepted, StatusSent},
		{StatusCompleted, StatusExpired},
		{StatusCompleted, StatusAccepted},
		{StatusExpired, StatusAccepted},
		{StatusExpired, StatusCompleted},
	}
	for _, pair := range denied {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusSent, NormalizeStatus("pending"))
	assert.Equal(t, StatusAccepted, NormalizeStatus(StatusAccepted))
	assert.Equal(t, "bogus", NormalizeStatus("bogus"))
}
