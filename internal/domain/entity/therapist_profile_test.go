package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	profile := &TherapistProfile{}

	avg, total := profile.AverageRating()
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, total)

	profile.Reviews = []Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 4},
	}
	avg, total = profile.AverageRating()
	assert.InDelta(t, 13.0/3.0, avg, 1e-9)
	assert.Equal(t, 3, total)
}

func TestStringListContains(t *testing.T) {
	list := StringList{"anxiety", "depression"}
	assert.True(t, list.Contains("anxiety"))
	assert.False(t, list.Contains("cbt"))
	assert.False(t, StringList(nil).Contains("anything"))
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"anxiety", "cbt"}

	value, err := list.Value()
	assert.NoError(t, err)

	var scanned StringList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListValueNil(t *testing.T) {
	value, err := StringList(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}
