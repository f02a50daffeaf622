package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
	"github.com/siherrmann/linker/sql"
)

// OrganizationsDBHandlerFunctions defines the interface for Organizations database operations.
type OrganizationsDBHandlerFunctions interface {
	InsertOrganization(organization *model.Organization) error
	SelectOrganizationBySlug(slug string) (*model.Organization, error)
	SelectAllOrganizations() ([]*model.Organization, error)
	DeleteOrganization(slug string) error
}

// OrganizationsDBHandler handles organization-related database operations
type OrganizationsDBHandler struct {
	db *helper.Database
}

// NewOrganizationsDBHandler creates a new organizations database handler.
// If force is true, it will reload the SQL functions even if they already exist.
func NewOrganizationsDBHandler(db *helper.Database, force bool) (*OrganizationsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	organizationsDbHandler := &OrganizationsDBHandler{
		db: db,
	}

	err := sql.LoadOrganizationsSql(organizationsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load organizations sql", err)
	}

	err = organizationsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized OrganizationsDBHandler")

	return organizationsDbHandler, nil
}

// CreateTable creates the 'organizations' table in the database.
// If the table already exists, it does not create it again.
func (h *OrganizationsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_organizations();`)
	if err != nil {
		log.Panicf("error initializing organizations table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table organizations")

	return nil
}

// InsertOrganization inserts an organization. An organization with the
// same slug is kept and returned unchanged.
func (h *OrganizationsDBHandler) InsertOrganization(organization *model.Organization) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_organization($1, $2)`,
		organization.Name,
		organization.Slug,
	)

	err := row.Scan(
		&organization.ID,
		&organization.Name,
		&organization.Slug,
		&organization.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectOrganizationBySlug retrieves an organization by slug
func (h *OrganizationsDBHandler) SelectOrganizationBySlug(slug string) (*model.Organization, error) {
	organization := &model.Organization{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_organization_by_slug($1)`,
		slug,
	)

	err := row.Scan(
		&organization.ID,
		&organization.Name,
		&organization.Slug,
		&organization.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return organization, nil
}

// SelectAllOrganizations retrieves all organizations in insertion order
func (h *OrganizationsDBHandler) SelectAllOrganizations() ([]*model.Organization, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_organizations()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var organizations []*model.Organization
	for rows.Next() {
		organization := &model.Organization{}
		err := rows.Scan(
			&organization.ID,
			&organization.Name,
			&organization.Slug,
			&organization.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		organizations = append(organizations, organization)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return organizations, nil
}

// DeleteOrganization deletes an organization by slug
func (h *OrganizationsDBHandler) DeleteOrganization(slug string) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_organization($1)`,
		slug,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
