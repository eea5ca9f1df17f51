package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighestRole(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected Role
	}{
		{
			name:     "single known role",
			labels:   []string{"Worker"},
			expected: RoleWorker,
		},
		{
			name:     "priority beats percentage ordering",
			labels:   []string{"Delivery", "Manager"},
			expected: RoleManager,
		},
		{
			name:     "highest of many",
			labels:   []string{"Delivery", "Worker", "Original Boss"},
			expected: RoleOriginalBoss,
		},
		{
			name:     "unknown labels are ignored",
			labels:   []string{"Moderator", "VIP", "Vice Boss"},
			expected: RoleViceBoss,
		},
		{
			name:     "only unknown labels",
			labels:   []string{"Moderator", "VIP"},
			expected: RoleNone,
		},
		{
			name:     "no labels",
			labels:   nil,
			expected: RoleNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HighestRole(tt.labels))
		})
	}
}

func TestRolePercentages(t *testing.T) {
	assert.Equal(t, 0.30, RoleOriginalBoss.Percentage())
	assert.Equal(t, 0.25, RoleViceBoss.Percentage())
	assert.Equal(t, 0.20, RoleManager.Percentage())
	assert.Equal(t, 0.15, RoleWorker.Percentage())
	assert.Equal(t, 0.10, RoleDelivery.Percentage())
	assert.Equal(t, 0.0, RoleNone.Percentage())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Original Boss", RoleOriginalBoss.String())
	assert.Equal(t, "no role", RoleNone.String())
	assert.Equal(t, "no role", Role(99).String())
}
