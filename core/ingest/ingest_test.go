package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/siherrmann/linker/core/fieldmap"
	"github.com/siherrmann/linker/core/record"
	"github.com/siherrmann/linker/core/resolve"
	"github.com/siherrmann/linker/model"
	"github.com/siherrmann/linker/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
	Size string
}

var itemLabels = []string{"Name", "Size"}

func buildItem(row []string, fields *fieldmap.FieldMap) (*item, error) {
	if err := fields.Check(row); err != nil {
		return nil, err
	}
	name := fields.Value(row, "Name")
	switch name {
	case "":
		return nil, fmt.Errorf("%w: empty name", record.ErrRejected)
	case "boom":
		panic("boom")
	case "broken":
		return nil, errors.New("broken row")
	}
	return &item{Name: name, Size: fields.Value(row, "Size")}, nil
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func reader(content string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	return r
}

func names(items []*item) []string {
	result := make([]string, 0, len(items))
	for _, i := range items {
		result = append(result, i.Name)
	}
	return result
}

func TestIngest(t *testing.T) {
	t.Run("Valid rows keep input order", func(t *testing.T) {
		logger, _ := newTestLogger()

		result := Ingest(reader("Size,Name,Extra\nS,a,x\nM,b,y\nL,c,z\n"), itemLabels, buildItem, logger)
		assert.Equal(t, []string{"a", "b", "c"}, names(result.Entities))
		assert.Equal(t, "M", result.Entities[1].Size, "Expected reordered columns to map by label")
		assert.Equal(t, 3, result.Rows)
		assert.Zero(t, result.Rejected)
		assert.Zero(t, result.Failed)
	})

	t.Run("Malformed row is isolated", func(t *testing.T) {
		logger, buf := newTestLogger()

		result := Ingest(reader("Name,Size\na,1\nb\nc,3\n"), itemLabels, buildItem, logger)
		assert.Equal(t, []string{"a", "c"}, names(result.Entities), "Expected short row to be skipped")
		assert.Equal(t, 3, result.Rows)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, buf.String(), "Error building row")
		assert.Contains(t, buf.String(), "row=2")
	})

	t.Run("Errors and panics are isolated", func(t *testing.T) {
		logger, buf := newTestLogger()

		result := Ingest(reader("Name,Size\nboom,1\nbroken,2\nok,3\n"), itemLabels, buildItem, logger)
		assert.Equal(t, []string{"ok"}, names(result.Entities))
		assert.Equal(t, 2, result.Failed)
		assert.Contains(t, buf.String(), "panic: boom")
	})

	t.Run("Rejected rows are counted", func(t *testing.T) {
		logger, buf := newTestLogger()

		result := Ingest(reader("Name,Size\n,1\na,2\n"), itemLabels, buildItem, logger)
		assert.Equal(t, []string{"a"}, names(result.Entities))
		assert.Equal(t, 1, result.Rejected)
		assert.Zero(t, result.Failed)
		assert.Contains(t, buf.String(), "Row rejected")
	})

	t.Run("Parse error is isolated", func(t *testing.T) {
		logger, buf := newTestLogger()

		result := Ingest(reader("Name,Size\na,1\nb,\"x\"y\nc,3\n"), itemLabels, buildItem, logger)
		assert.Equal(t, []string{"a", "c"}, names(result.Entities))
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, buf.String(), "Error parsing row")
	})

	t.Run("Empty source", func(t *testing.T) {
		logger, _ := newTestLogger()

		result := Ingest(reader(""), itemLabels, buildItem, logger)
		assert.NotNil(t, result.Entities)
		assert.Empty(t, result.Entities)
		assert.Zero(t, result.Rows)
	})

	t.Run("Header only", func(t *testing.T) {
		result := Ingest(reader("Name,Size\n"), itemLabels, buildItem, nil)
		assert.Empty(t, result.Entities)
		assert.Zero(t, result.Rows)
	})
}

func TestIngestFile(t *testing.T) {
	t.Run("Missing file gives empty result", func(t *testing.T) {
		logger, buf := newTestLogger()

		result := IngestFile(filepath.Join(t.TempDir(), "missing.csv"), itemLabels, buildItem, logger)
		require.NotNil(t, result)
		assert.Empty(t, result.Entities)
		assert.Equal(t, 1, strings.Count(buf.String(), "Error opening source"), "Expected open failure to be logged once")
	})

	t.Run("BOM is stripped", func(t *testing.T) {
		logger, _ := newTestLogger()

		path := filepath.Join(t.TempDir(), "items.csv")
		require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFName,Size\na,1\n"), 0o600))

		result := IngestFile(path, itemLabels, buildItem, logger)
		assert.Equal(t, []string{"a"}, names(result.Entities))
	})
}

func TestIngestExports(t *testing.T) {
	logger, _ := newTestLogger()
	dir := t.TempDir()

	connections := "First Name,Last Name,URL,Email Address,Company,Position,Connected On\n" +
		"Jane,Doe,https://www.linkedin.com/in/jane-doe,,Acme Inc.,CTO,01-Jul-25\n" +
		"John,Smith,https://www.linkedin.com/in/john-smith,john@example.com,Globex,Engineer,02-Jul-25\n" +
		",,https://www.linkedin.com/in/nobody,,,,\n"
	messages := "CONVERSATION ID,CONVERSATION TITLE,FROM,SENDER PROFILE URL,TO,RECIPIENT PROFILE URLS,DATE,SUBJECT,CONTENT,FOLDER\n" +
		"c1,,Jane Doe,https://www.linkedin.com/in/jane-doe,John Smith,https://www.linkedin.com/in/john-smith,2025-07-03 10:00:00 UTC,,Hi John,INBOX\n" +
		"c1,,John Smith,https://www.linkedin.com/in/john-smith,Jane Doe,https://www.linkedin.com/in/jane-doe,2025-07-03 10:05:00 UTC,,Message request accepted,INBOX\n" +
		"c2,,Eve,https://www.linkedin.com/in/eve,John Smith,https://www.linkedin.com/in/john-smith,2025-07-04 10:00:00 UTC,,Hello,INBOX\n" +
		"c2,,Eve,https://www.linkedin.com/in/eve,John Smith,https://www.linkedin.com/in/john-smith,2025-07-04 10:01:00 UTC,,Hello?,INBOX\n"

	connectionsPath := filepath.Join(dir, model.DefaultConnectionsFile)
	messagesPath := filepath.Join(dir, model.DefaultMessagesFile)
	require.NoError(t, os.WriteFile(connectionsPath, []byte(connections), 0o600))
	require.NoError(t, os.WriteFile(messagesPath, []byte(messages), 0o600))

	reg := registry.NewMemory()
	config := model.DefaultConfig()
	config.TimeZone = "UTC"
	builder, err := record.NewBuilder(reg, &config, logger)
	require.NoError(t, err)

	people := IngestFile(connectionsPath, record.ConnectionsFields, builder.BuildPerson, logger)
	require.Len(t, people.Entities, 2)
	assert.Equal(t, 1, people.Rejected)
	for _, person := range people.Entities {
		reg.AddPerson(person)
	}

	resolver := resolve.New(reg, logger)
	buildMessage := func(row []string, fields *fieldmap.FieldMap) (*model.Message, error) {
		return builder.BuildMessage(row, fields, resolver)
	}
	result := IngestFile(messagesPath, record.MessagesFields, buildMessage, logger)
	require.Len(t, result.Entities, 1)
	assert.Equal(t, "jane-doe", result.Entities[0].FromSlug)
	assert.Equal(t, []string{"john-smith"}, result.Entities[0].ToSlugs)
	assert.Equal(t, 3, result.Rejected)
	assert.Equal(t, []string{"eve"}, resolver.NotFound(), "Expected unknown sender to be reported once")
}
