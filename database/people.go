package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
	"github.com/siherrmann/linker/sql"
)

// PeopleDBHandlerFunctions defines the interface for People database operations.
type PeopleDBHandlerFunctions interface {
	InsertPerson(person *model.Person) error
	SelectPerson(rid uuid.UUID) (*model.Person, error)
	SelectPersonBySlug(slug string) (*model.Person, error)
	SelectPersonByLinkedInID(linkedInID string) (*model.Person, error)
	SelectAllPeople() ([]*model.Person, error)
	SelectPeopleBySearch(searchTerm string, limit int) ([]*model.Person, error)
	DeletePerson(rid uuid.UUID) error
}

// PeopleDBHandler handles person-related database operations
type PeopleDBHandler struct {
	db *helper.Database
}

// NewPeopleDBHandler creates a new people database handler.
// It loads the people SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewPeopleDBHandler(db *helper.Database, force bool) (*PeopleDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	peopleDbHandler := &PeopleDBHandler{
		db: db,
	}

	err := sql.LoadPeopleSql(peopleDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load people sql", err)
	}

	err = peopleDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized PeopleDBHandler")

	return peopleDbHandler, nil
}

// CreateTable creates the 'people' table in the database.
// If the table already exists, it does not create it again.
func (h *PeopleDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_people();`)
	if err != nil {
		log.Panicf("error initializing people table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table people")

	return nil
}

// InsertPerson inserts a person or updates the stored person with the same slug
func (h *PeopleDBHandler) InsertPerson(person *model.Person) error {
	var rid *uuid.UUID
	if person.RID != uuid.Nil {
		rid = &person.RID
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_person($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rid,
		person.Slug,
		person.Identity.FirstName,
		person.Identity.LastName,
		person.Identity.FullName,
		person.Identity.Alias,
		person.URL,
		person.LinkedInID,
		person.Email,
		pq.Array(person.Organizations),
		person.Positions,
		person.ConnectedOn,
		person.LastUpdated,
	)

	err := scanPerson(row, person)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectPerson retrieves a person by RID
func (h *PeopleDBHandler) SelectPerson(rid uuid.UUID) (*model.Person, error) {
	return h.selectOne(`SELECT * FROM select_person($1)`, rid)
}

// SelectPersonBySlug retrieves a person by slug
func (h *PeopleDBHandler) SelectPersonBySlug(slug string) (*model.Person, error) {
	return h.selectOne(`SELECT * FROM select_person_by_slug($1)`, slug)
}

// SelectPersonByLinkedInID retrieves the first person stored for a LinkedIn id
func (h *PeopleDBHandler) SelectPersonByLinkedInID(linkedInID string) (*model.Person, error) {
	return h.selectOne(`SELECT * FROM select_person_by_linkedin_id($1)`, linkedInID)
}

// SelectAllPeople retrieves all people in insertion order
func (h *PeopleDBHandler) SelectAllPeople() ([]*model.Person, error) {
	return h.selectMany(`SELECT * FROM select_all_people()`)
}

// SelectPeopleBySearch searches people by full name or alias
func (h *PeopleDBHandler) SelectPeopleBySearch(searchTerm string, limit int) ([]*model.Person, error) {
	return h.selectMany(`SELECT * FROM search_people($1, $2)`, searchTerm, limit)
}

// DeletePerson deletes a person by RID
func (h *PeopleDBHandler) DeletePerson(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_person($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *PeopleDBHandler) selectOne(query string, args ...interface{}) (*model.Person, error) {
	person := &model.Person{}
	row := h.db.Instance.QueryRow(query, args...)

	err := scanPerson(row, person)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return person, nil
}

func (h *PeopleDBHandler) selectMany(query string, args ...interface{}) ([]*model.Person, error) {
	rows, err := h.db.Instance.Query(query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var people []*model.Person
	for rows.Next() {
		person := &model.Person{}
		err := scanPerson(rows, person)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		people = append(people, person)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return people, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row scanner, person *model.Person) error {
	err := row.Scan(
		&person.ID,
		&person.RID,
		&person.Slug,
		&person.Identity.FirstName,
		&person.Identity.LastName,
		&person.Identity.FullName,
		&person.Identity.Alias,
		&person.URL,
		&person.LinkedInID,
		&person.Email,
		pq.Array(&person.Organizations),
		&person.Positions,
		&person.ConnectedOn,
		&person.LastUpdated,
		&person.CreatedAt,
	)
	if err != nil {
		return err
	}

	person.Identity.Slug = person.Slug
	return nil
}
