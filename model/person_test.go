package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositions(t *testing.T) {
	t.Run("Value of nil positions is an empty array", func(t *testing.T) {
		var p Positions

		value, err := p.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("[]"), value)
	})

	t.Run("Scan reads JSON bytes", func(t *testing.T) {
		var p Positions

		err := p.Scan([]byte(`[{"title":"Engineer","current":true,"organization_slug":"acme"}]`))
		require.NoError(t, err)
		require.Len(t, p, 1)
		assert.Equal(t, Position{Title: "Engineer", Current: true, OrganizationSlug: "acme"}, p[0])
	})

	t.Run("Scan reads JSON strings", func(t *testing.T) {
		var p Positions

		err := p.Scan(`[]`)
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("Scan nil gives empty positions", func(t *testing.T) {
		p := Positions{{Title: "old"}}

		err := p.Scan(nil)
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("Scan rejects other types", func(t *testing.T) {
		var p Positions

		err := p.Scan(42)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "type assertion to []byte failed")
	})
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		display  string
		empty    bool
	}{
		{"Full name wins", Identity{FirstName: "Jane", LastName: "Doe", FullName: "Jane Doe"}, "Jane Doe", false},
		{"First name only", Identity{FirstName: "Jane"}, "Jane", false},
		{"Last name only", Identity{LastName: "Doe"}, "Doe", false},
		{"Alias alone is empty", Identity{Alias: "JD"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.display, tt.identity.Name())
			assert.Equal(t, tt.empty, tt.identity.IsEmpty())
		})
	}
}

func TestMessageTime(t *testing.T) {
	m := &Message{Timestamp: 1686497638}

	assert.Equal(t, time.Date(2023, 6, 11, 15, 33, 58, 0, time.UTC), m.Time(time.UTC))
}
