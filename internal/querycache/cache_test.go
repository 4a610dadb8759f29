package querycache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
)

func TestGetSetRoundTrip(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	store := NewWithClock(fake, time.Minute)

	_, ok := store.Get("clients.list")
	require.False(t, ok)

	store.Set("clients.list", []string{"a", "b"})
	value, ok := store.Get("clients.list")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, value)
}

func TestParamsSeparateEntries(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	store := NewWithClock(fake, time.Minute)

	store.Set("providers.list", "companies", "company")
	store.Set("providers.list", "people", "persona")

	value, ok := store.Get("providers.list", "company")
	require.True(t, ok)
	require.Equal(t, "companies", value)

	// Params are normalized before keying.
	value, ok = store.Get("providers.list", "  Persona ")
	require.True(t, ok)
	require.Equal(t, "people", value)
}

func TestEntriesExpire(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	store := NewWithClock(fake, time.Minute)

	store.Set("documents.list", 42)
	_, ok := store.Get("documents.list")
	require.True(t, ok)

	fake.Advance(2 * time.Minute)
	_, ok = store.Get("documents.list")
	require.False(t, ok)
}

func TestInvalidateByName(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	store := NewWithClock(fake, time.Minute)

	store.Set("inventory.list", 1)
	store.Set("inventory.list", 2, "pantallas")
	store.Set("clients.list", 3)

	store.Invalidate("inventory.list")

	_, ok := store.Get("inventory.list")
	require.False(t, ok)
	_, ok = store.Get("inventory.list", "pantallas")
	require.False(t, ok)

	// Other query names survive.
	value, ok := store.Get("clients.list")
	require.True(t, ok)
	require.Equal(t, 3, value)
}
