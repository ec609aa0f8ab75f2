package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"journeatz-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.OrderStatus
		to    models.OrderStatus
		actor models.UserRole
		ok    bool
	}{
		{"kitchen accepts pending", models.StatusPending, models.StatusInProgress, models.RoleKitchen, true},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, models.RoleCustomer, true},
		{"kitchen cancels pending", models.StatusPending, models.StatusCancelled, models.RoleKitchen, true},
		{"kitchen readies in_progress", models.StatusInProgress, models.StatusReady, models.RoleKitchen, true},
		{"kitchen cancels in_progress", models.StatusInProgress, models.StatusCancelled, models.RoleKitchen, true},
		{"driver delivers ready", models.StatusReady, models.StatusDelivered, models.RoleDriver, true},

		{"customer cannot accept", models.StatusPending, models.StatusInProgress, models.RoleCustomer, false},
		{"customer cannot cancel in_progress", models.StatusInProgress, models.StatusCancelled, models.RoleCustomer, false},
		{"driver cannot ready", models.StatusInProgress, models.StatusReady, models.RoleDriver, false},
		{"kitchen cannot deliver", models.StatusReady, models.StatusDelivered, models.RoleKitchen, false},
		{"no skipping to delivered", models.StatusPending, models.StatusDelivered, models.RoleDriver, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusPending, models.RoleKitchen, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusInProgress, models.RoleKitchen, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAdminMayForceAnyChange(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusDelivered, models.StatusPending, models.RoleAdmin))
	assert.NoError(t, CanTransition(models.StatusCancelled, models.StatusReady, models.RoleAdmin))
	assert.Error(t, CanTransition(models.StatusReady, models.StatusReady, models.RoleAdmin), "no-op transition is rejected")
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusInProgress))
	assert.False(t, IsTerminal(models.StatusReady))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusInProgress, models.StatusCancelled}, nexts)

	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
}
