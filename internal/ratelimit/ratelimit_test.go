package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxTotal(t *testing.T) {
	guard := New(Policy{MaxTotal: 2})

	ok, _ := guard.Allow("get_stock_by_company")
	assert.True(t, ok)
	ok, _ = guard.Allow("get_stock_by_company")
	assert.True(t, ok)

	ok, reason := guard.Allow("get_stock_by_company")
	assert.False(t, ok)
	assert.Equal(t, ReasonMaxTotal, reason)

	// Limits are tracked per tool.
	ok, _ = guard.Allow("get_all_companies")
	assert.True(t, ok)
}

func TestRateBurst(t *testing.T) {
	guard := New(Policy{PerMinute: 60, Burst: 2})

	ok, _ := guard.Allow("get_employee_info")
	assert.True(t, ok)
	ok, _ = guard.Allow("get_employee_info")
	assert.True(t, ok)

	ok, reason := guard.Allow("get_employee_info")
	assert.False(t, ok)
	assert.Equal(t, ReasonRate, reason)
}

func TestBurstDefaultsToPerMinute(t *testing.T) {
	guard := New(Policy{PerMinute: 3})

	for i := 0; i < 3; i++ {
		ok, _ := guard.Allow("tool")
		assert.True(t, ok, "call %d within burst", i)
	}
	ok, _ := guard.Allow("tool")
	assert.False(t, ok)
}

func TestUnlimitedPolicy(t *testing.T) {
	guard := New(Policy{})

	for i := 0; i < 100; i++ {
		ok, reason := guard.Allow("tool")
		assert.True(t, ok)
		assert.Empty(t, reason)
	}
}

func TestNilGuard(t *testing.T) {
	var guard *Guard
	ok, reason := guard.Allow("tool")
	assert.True(t, ok)
	assert.Empty(t, reason)
}
