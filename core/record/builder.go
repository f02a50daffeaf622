package record

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/linker/core/fieldmap"
	"github.com/siherrmann/linker/core/normalize"
	"github.com/siherrmann/linker/core/resolve"
	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
)

// ErrRejected is wrapped by every error for a row that is valid input
// but does not produce an entity (missing required field, unknown participant,
// placeholder body).
var ErrRejected = errors.New("row rejected")

// Registry issues the slugs of people and organizations
type Registry interface {
	PersonSlug(identity model.Identity) string
	OrganizationSlug(name string) string
}

// Builder turns rows of the exports into people and messages
type Builder struct {
	registry Registry
	location *time.Location
	ignored  map[string]struct{}
	now      func() time.Time
	log      *slog.Logger
}

// NewBuilder creates a builder using registry for slugs and the time zone
// and extra ignored bodies of config.
func NewBuilder(registry Registry, config *model.Config, logger *slog.Logger) (*Builder, error) {
	if registry == nil {
		return nil, helper.NewError("registry validation", fmt.Errorf("registry is nil"))
	}
	if config == nil {
		defaultConfig := model.DefaultConfig()
		config = &defaultConfig
	}
	if logger == nil {
		logger = slog.Default()
	}

	location, err := config.Location()
	if err != nil {
		return nil, helper.NewError("load time zone", err)
	}

	ignored := make(map[string]struct{}, len(PlaceholderBodies)+len(config.IgnoredBodies))
	for _, body := range PlaceholderBodies {
		ignored[body] = struct{}{}
	}
	for _, body := range config.IgnoredBodies {
		ignored[body] = struct{}{}
	}

	return &Builder{
		registry: registry,
		location: location,
		ignored:  ignored,
		now:      time.Now,
		log:      logger,
	}, nil
}

// BuildPerson builds a person from a connections row.
// Rows without URL or without any name are rejected.
func (b *Builder) BuildPerson(row []string, fields *fieldmap.FieldMap) (*model.Person, error) {
	if err := fields.Check(row); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(fields.Value(row, ConnectionsURL))
	if url == "" {
		return nil, fmt.Errorf("%w: missing profile url", ErrRejected)
	}

	identity := normalize.Name(fields.Value(row, ConnectionsFirstName), fields.Value(row, ConnectionsLastName))
	if identity.IsEmpty() {
		return nil, fmt.Errorf("%w: missing name for %s", ErrRejected, url)
	}

	slug := b.registry.PersonSlug(identity)
	identity.Slug = slug

	person := &model.Person{
		RID:           uuid.New(),
		Identity:      identity,
		URL:           url,
		LinkedInID:    LinkedInID(url),
		Organizations: []string{},
		Positions:     model.Positions{},
		LastUpdated:   b.now().Format(normalize.DateLayout),
		Slug:          slug,
	}

	if email := strings.TrimSpace(fields.Value(row, ConnectionsEmailAddress)); email != "" {
		person.Email = email
	}

	organizationSlug := ""
	if company := normalize.CompanyName(fields.Value(row, ConnectionsCompany)); company != "" {
		organizationSlug = b.registry.OrganizationSlug(company)
		if organizationSlug != "" {
			person.Organizations = append(person.Organizations, organizationSlug)
		}
	}

	if title := strings.TrimSpace(fields.Value(row, ConnectionsPosition)); title != "" {
		person.Positions = append(person.Positions, model.Position{
			Title:            title,
			Current:          true,
			OrganizationSlug: organizationSlug,
		})
	}

	if raw := fields.Value(row, ConnectionsConnectedOn); raw != "" {
		connectedOn, err := normalize.ConnectionDate(raw)
		if err != nil {
			b.log.Warn("Keeping raw connection date", slog.String("person", slug), slog.String("error", err.Error()))
		}
		person.ConnectedOn = connectedOn
	}

	return person, nil
}

// BuildMessage builds a message from a messages row.
// Sender and first recipient must resolve through resolver and the body
// must be non-empty and not a placeholder, otherwise the row is rejected.
func (b *Builder) BuildMessage(row []string, fields *fieldmap.FieldMap, resolver *resolve.Resolver) (*model.Message, error) {
	if err := fields.Check(row); err != nil {
		return nil, err
	}
	if resolver == nil {
		return nil, helper.NewError("resolver validation", fmt.Errorf("resolver is nil"))
	}

	sender, ok := resolver.Sender(fields.Value(row, MessagesSenderProfileURL))
	if !ok {
		return nil, fmt.Errorf("%w: unknown sender %q", ErrRejected, fields.Value(row, MessagesFrom))
	}

	recipient, ok := resolver.Recipient(fields.Value(row, MessagesRecipientProfileURL))
	if !ok {
		return nil, fmt.Errorf("%w: unknown recipient %q", ErrRejected, fields.Value(row, MessagesTo))
	}

	body := fields.Value(row, MessagesContent)
	if _, placeholder := b.ignored[body]; placeholder {
		return nil, fmt.Errorf("%w: placeholder body", ErrRejected)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrRejected)
	}

	timestamp, err := normalize.MessageTime(fields.Value(row, MessagesDate), b.location)
	if err != nil {
		return nil, helper.NewError("parse message time", err)
	}

	return &model.Message{
		RID:               uuid.New(),
		Service:           model.ServiceLinkedIn,
		ConversationID:    fields.Value(row, MessagesConversationID),
		ConversationTitle: fields.Value(row, MessagesConversationTitle),
		Subject:           fields.Value(row, MessagesSubject),
		Folder:            fields.Value(row, MessagesFolder),
		FromSlug:          sender.Slug,
		ToSlugs:           []string{recipient.Slug},
		Body:              body,
		DateStr:           timestamp.Date,
		TimeStr:           timestamp.Time,
		Timestamp:         timestamp.Unix,
		Metadata:          participantNames(fields.Value(row, MessagesFrom), fields.Value(row, MessagesTo)),
	}, nil
}

// participantNames keeps the display names of the export
func participantNames(from string, to string) model.Metadata {
	metadata := model.Metadata{}
	if from = strings.TrimSpace(from); from != "" {
		metadata["from_name"] = from
	}
	if to = strings.TrimSpace(to); to != "" {
		metadata["to_name"] = to
	}
	return metadata
}

// LinkedInID returns the last path segment of a profile URL
func LinkedInID(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
