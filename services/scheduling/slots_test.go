package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	slots := Catalog()
	require.Len(t, slots, 46)
	assert.Equal(t, "01:00", slots[0])
	assert.Equal(t, "23:30", slots[len(slots)-1])

	// Every entry sits on the 30-minute grid and the list is strictly ascending.
	prev := -1
	for _, slot := range slots {
		m, err := ToMinutes(slot)
		require.NoError(t, err, slot)
		assert.Zero(t, m%SlotGranularityMinutes, slot)
		assert.Greater(t, m, prev)
		prev = m
	}
}

func TestCatalogDeterministic(t *testing.T) {
	assert.Equal(t, Catalog(), Catalog())
}

func TestToMinutes(t *testing.T) {
	m, err := ToMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ToMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ToMinutes("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		_, err := ToMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatMinuteRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m += 17 {
		back, err := ToMinutes(FormatMinute(m))
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}
