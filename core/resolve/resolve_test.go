package resolve

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/siherrmann/linker/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finderStub map[string]*model.Person

func (f finderStub) PersonByLinkedInID(key string) (*model.Person, bool) {
	p, ok := f[key]
	return p, ok
}

func newTestResolver(t *testing.T) (*Resolver, *bytes.Buffer) {
	t.Helper()

	finder := finderStub{
		"jane-doe-1a2b3c": {Slug: "jane-doe", LinkedInID: "jane-doe-1a2b3c"},
		"john-smith":      {Slug: "john-smith", LinkedInID: "john-smith"},
		"no-slug":         {LinkedInID: "no-slug"},
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	return New(finder, logger), &buf
}

func TestKeyFromProfileURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.linkedin.com/in/jane-doe-1a2b3c", "jane-doe-1a2b3c"},
		{"https://www.linkedin.com/in/jane-doe-1a2b3c/", "jane-doe-1a2b3c"},
		{" https://www.linkedin.com/in/john-smith ", "john-smith"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyFromProfileURL(tt.input))
		})
	}
}

func TestSender(t *testing.T) {
	t.Run("Known sender resolves", func(t *testing.T) {
		r, _ := newTestResolver(t)

		person, ok := r.Sender("https://www.linkedin.com/in/jane-doe-1a2b3c")
		require.True(t, ok)
		assert.Equal(t, "jane-doe", person.Slug)
		assert.Empty(t, r.NotFound())
	})

	t.Run("Unknown sender is reported once", func(t *testing.T) {
		r, buf := newTestResolver(t)

		for i := 0; i < 3; i++ {
			person, ok := r.Sender("https://www.linkedin.com/in/stranger")
			assert.False(t, ok)
			assert.Nil(t, person)
		}

		assert.Equal(t, []string{"stranger"}, r.NotFound())
		assert.Equal(t, 1, strings.Count(buf.String(), "Profile not found"), "Expected exactly one report")
	})

	t.Run("Person without slug is not resolved", func(t *testing.T) {
		r, _ := newTestResolver(t)

		_, ok := r.Sender("https://www.linkedin.com/in/no-slug")
		assert.False(t, ok)
		assert.Equal(t, []string{"no-slug"}, r.NotFound())
	})

	t.Run("Empty url is rejected without a report", func(t *testing.T) {
		r, _ := newTestResolver(t)

		_, ok := r.Sender("")
		assert.False(t, ok)
		assert.Empty(t, r.NotFound())
	})
}

func TestRecipient(t *testing.T) {
	t.Run("Only the first recipient is used", func(t *testing.T) {
		r, _ := newTestResolver(t)

		person, ok := r.Recipient("https://www.linkedin.com/in/john-smith;https://www.linkedin.com/in/stranger")
		require.True(t, ok)
		assert.Equal(t, "john-smith", person.Slug)
		assert.Empty(t, r.NotFound(), "Expected the second recipient to be ignored")
	})

	t.Run("Unknown first recipient is reported", func(t *testing.T) {
		r, _ := newTestResolver(t)

		_, ok := r.Recipient("https://www.linkedin.com/in/stranger;https://www.linkedin.com/in/john-smith")
		assert.False(t, ok)
		assert.Equal(t, []string{"stranger"}, r.NotFound())
	})
}

func TestNotFoundOrder(t *testing.T) {
	r, _ := newTestResolver(t)

	r.Resolve("b")
	r.Resolve("a")
	r.Resolve("b")
	r.Resolve("c")

	missing := r.NotFound()
	assert.Equal(t, []string{"b", "a", "c"}, missing)

	missing[0] = "changed"
	assert.Equal(t, "b", r.NotFound()[0], "Expected NotFound to return a copy")
}

func TestNilFinder(t *testing.T) {
	r := New(nil, nil)

	_, ok := r.Resolve("anyone")
	assert.False(t, ok)
	assert.Equal(t, []string{"anyone"}, r.NotFound())
}
