package linker

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/linker/core/fieldmap"
	"github.com/siherrmann/linker/core/ingest"
	"github.com/siherrmann/linker/core/record"
	"github.com/siherrmann/linker/core/resolve"
	"github.com/siherrmann/linker/database"
	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
	"github.com/siherrmann/linker/registry"
	loadSql "github.com/siherrmann/linker/sql"
)

// Linker ingests a LinkedIn export into people and messages.
// Without a database everything stays in the in-memory registry.
type Linker struct {
	Config        *model.Config
	Registry      *registry.Memory
	Builder       *record.Builder
	DB            *helper.Database                 // Optional
	People        *database.PeopleDBHandler        // Optional
	Organizations *database.OrganizationsDBHandler // Optional
	Messages      *database.MessagesDBHandler      // Optional
	// Logging
	log *slog.Logger
}

// NewLinker creates a new Linker logging to stdout.
// If dbConfig is nil nothing is persisted.
func NewLinker(config *model.Config, dbConfig *helper.DatabaseConfiguration) (*Linker, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	return NewLinkerWithLogger(config, dbConfig, logger)
}

// NewLinkerWithLogger creates a new Linker using logger
func NewLinkerWithLogger(config *model.Config, dbConfig *helper.DatabaseConfiguration, logger *slog.Logger) (*Linker, error) {
	if config == nil {
		defaultConfig := model.DefaultConfig()
		config = &defaultConfig
	}
	if logger == nil {
		logger = slog.Default()
	}

	reg := registry.NewMemory()
	builder, err := record.NewBuilder(reg, config, logger)
	if err != nil {
		return nil, helper.NewError("create builder", err)
	}

	l := &Linker{
		Config:   config,
		Registry: reg,
		Builder:  builder,
		log:      logger,
	}

	if dbConfig == nil {
		return l, nil
	}

	// Initialize database
	db, err := helper.NewDatabase("linker", dbConfig, logger)
	if err != nil {
		return nil, helper.NewError("connect database", err)
	}
	err = loadSql.Init(db.Instance)
	if err != nil {
		db.Close()
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	organizations, err := database.NewOrganizationsDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create organizations handler", err)
	}

	people, err := database.NewPeopleDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create people handler", err)
	}

	messages, err := database.NewMessagesDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create messages handler", err)
	}

	l.DB = db
	l.Organizations = organizations
	l.People = people
	l.Messages = messages

	return l, nil
}

// Close closes the database connection
func (l *Linker) Close() error {
	if l.DB != nil && l.DB.Instance != nil {
		return l.DB.Instance.Close()
	}
	return nil
}

// ImportConnections ingests the connections export and registers every
// person so messages can be resolved. With a database the people and
// their organizations are stored as well.
func (l *Linker) ImportConnections() (*ingest.Result[model.Person], error) {
	result := ingest.IngestFile(l.Config.ConnectionsPath(), record.ConnectionsFields, l.Builder.BuildPerson, l.log)

	for _, person := range result.Entities {
		l.Registry.AddPerson(person)
	}

	if l.DB == nil {
		return result, nil
	}

	if err := l.storeOrganizations(); err != nil {
		return result, err
	}
	for _, person := range result.Entities {
		if err := l.People.InsertPerson(person); err != nil {
			return result, helper.NewError(fmt.Sprintf("insert person %s", person.Slug), err)
		}
	}

	l.log.Info("Stored people", slog.Int("count", len(result.Entities)))

	return result, nil
}

// ImportMessages ingests the messages export against the people registered
// so far. It returns the LinkedIn ids that could not be resolved.
func (l *Linker) ImportMessages() (*ingest.Result[model.Message], []string, error) {
	if len(l.Registry.People()) == 0 {
		l.log.Warn("No people registered, import connections or load people first")
	}

	resolver := resolve.New(l.Registry, l.log)
	build := func(row []string, fields *fieldmap.FieldMap) (*model.Message, error) {
		return l.Builder.BuildMessage(row, fields, resolver)
	}
	result := ingest.IngestFile(l.Config.MessagesPath(), record.MessagesFields, build, l.log)

	notFound := resolver.NotFound()
	if len(notFound) > 0 {
		l.log.Info("Unresolved profiles", slog.Int("count", len(notFound)))
	}

	if l.DB == nil {
		return result, notFound, nil
	}

	for _, message := range result.Entities {
		if err := l.Messages.InsertMessage(message); err != nil {
			return result, notFound, helper.NewError("insert message", err)
		}
	}

	l.log.Info("Stored messages", slog.Int("count", len(result.Entities)))

	return result, notFound, nil
}

// Summary reports a full import
type Summary struct {
	People   *ingest.Result[model.Person]
	Messages *ingest.Result[model.Message]
	NotFound []string
}

// Import ingests connections and then messages
func (l *Linker) Import() (*Summary, error) {
	people, err := l.ImportConnections()
	if err != nil {
		return nil, helper.NewError("import connections", err)
	}

	messages, notFound, err := l.ImportMessages()
	if err != nil {
		return nil, helper.NewError("import messages", err)
	}

	return &Summary{
		People:   people,
		Messages: messages,
		NotFound: notFound,
	}, nil
}

// LoadPeople registers all stored people and organizations so messages
// can be imported without importing connections again.
func (l *Linker) LoadPeople() (int, error) {
	if l.DB == nil {
		return 0, helper.NewError("load people", fmt.Errorf("database not configured"))
	}

	organizations, err := l.Organizations.SelectAllOrganizations()
	if err != nil {
		return 0, helper.NewError("select organizations", err)
	}
	for _, organization := range organizations {
		l.Registry.AddOrganization(organization)
	}

	people, err := l.People.SelectAllPeople()
	if err != nil {
		return 0, helper.NewError("select people", err)
	}
	for _, person := range people {
		l.Registry.AddPerson(person)
	}

	l.log.Info("Loaded people", slog.Int("people", len(people)), slog.Int("organizations", len(organizations)))

	return len(people), nil
}

// SearchPeople searches stored people by name or alias
func (l *Linker) SearchPeople(term string, limit int) ([]*model.Person, error) {
	if l.DB == nil {
		return nil, helper.NewError("search people", fmt.Errorf("database not configured"))
	}
	return l.People.SelectPeopleBySearch(term, limit)
}

// MessagesWith returns the stored messages sent or received by the person with slug
func (l *Linker) MessagesWith(slug string) ([]*model.Message, error) {
	if l.DB == nil {
		return nil, helper.NewError("select messages", fmt.Errorf("database not configured"))
	}
	return l.Messages.SelectMessagesByPerson(slug)
}

// ChangeSearchIndexType changes the people search index between GIN and GiST
func (l *Linker) ChangeSearchIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	if l.DB == nil {
		return helper.NewError("change index type", fmt.Errorf("database not configured"))
	}
	return l.People.ChangeSearchIndexType(ctx, indexType, params)
}

// storeOrganizations inserts organizations registered since the last call
func (l *Linker) storeOrganizations() error {
	for _, organization := range l.Registry.Organizations() {
		if organization.ID != 0 {
			continue
		}
		if err := l.Organizations.InsertOrganization(organization); err != nil {
			return helper.NewError(fmt.Sprintf("insert organization %s", organization.Slug), err)
		}
	}
	return nil
}
