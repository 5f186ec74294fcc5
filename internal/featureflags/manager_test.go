package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, 1), name)
	}
	for _, name := range []string{"b", "d", "f", "missing"} {
		assert.False(t, m.Enabled(name, 1), name)
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=x%")

	assert.True(t, m.Enabled("always", 1))
	assert.False(t, m.Enabled("never", 1))
	assert.False(t, m.Enabled("broken", 1))

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42), "rollout must be deterministic per user")
	}
	assert.False(t, m.Enabled("canary", 0), "percentage rollout requires a user")
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,Auto_Approve_Videos=on, y = 20% ,z=off ")

	raw := m.Raw()
	assert.Len(t, raw, 3)
	assert.Equal(t, "on", raw[AutoApproveVideos])
	assert.Equal(t, "20%", raw["y"])

	snap := m.Snapshot(123)
	assert.True(t, snap[AutoApproveVideos])
	assert.False(t, snap[AutoApproveArticles])
	assert.Contains(t, snap, "z")
	assert.Len(t, snap, 4)
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(AutoApproveArticles, 1))
	assert.Empty(t, m.Raw())
	assert.Len(t, m.Snapshot(1), len(Known))
}
