package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsable(t *testing.T) {
	testCases := []struct {
		name    string
		apiKey  string
		expired bool
		want    bool
	}{
		{name: "credential present", apiKey: "key", want: true},
		{name: "no credential", apiKey: "", want: false},
		{name: "whitespace credential", apiKey: "   ", want: false},
		{name: "expired credential", apiKey: "key", expired: true, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.apiKey)
			if tc.expired {
				s.MarkExpired()
			}
			assert.Equal(t, tc.want, s.Usable())
		})
	}
}

func TestMarkExpiredIsSticky(t *testing.T) {
	s := New("key")
	require.True(t, s.Usable())

	s.MarkExpired()
	assert.False(t, s.Usable())
	assert.True(t, s.Expired())

	// a second mark changes nothing
	s.MarkExpired()
	assert.True(t, s.Expired())
}

func TestRecordSearchMostRecentFirst(t *testing.T) {
	s := New("")
	s.RecordSearch("dune")
	s.RecordSearch("foundation")
	s.RecordSearch("hyperion")

	assert.Equal(t, []string{"hyperion", "foundation", "dune"}, s.History())
}

func TestRecordSearchDeduplicates(t *testing.T) {
	s := New("")
	s.RecordSearch("dune")
	s.RecordSearch("foundation")
	s.RecordSearch("Dune")

	assert.Equal(t, []string{"Dune", "foundation"}, s.History())
}

func TestRecordSearchCapped(t *testing.T) {
	s := New("")
	for i := 0; i < 15; i++ {
		s.RecordSearch(fmt.Sprintf("query-%d", i))
	}

	history := s.History()
	require.Len(t, history, historyCap)
	assert.Equal(t, "query-14", history[0])
	assert.Equal(t, "query-5", history[historyCap-1])
}

func TestRecordSearchIgnoresBlank(t *testing.T) {
	s := New("")
	s.RecordSearch("   ")
	assert.Empty(t, s.History())
}

func TestToggleFavorite(t *testing.T) {
	s := New("")

	assert.True(t, s.ToggleFavorite("Dune"))
	assert.True(t, s.IsFavorite("Dune"))

	assert.False(t, s.ToggleFavorite("Dune"))
	assert.False(t, s.IsFavorite("Dune"))
	assert.Empty(t, s.Favorites())
}
