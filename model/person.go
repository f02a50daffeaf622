package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/linker/helper"
)

// Person represents a known contact from the connections export
type Person struct {
	ID            int64     `json:"id"`
	RID           uuid.UUID `json:"rid"`
	Identity      Identity  `json:"identity"`
	URL           string    `json:"url"`
	LinkedInID    string    `json:"linkedin_id"`
	Email         string    `json:"email,omitempty"`
	Organizations []string  `json:"organizations"`
	Positions     Positions `json:"positions"`
	ConnectedOn   string    `json:"connected_on,omitempty"`
	LastUpdated   string    `json:"last_updated,omitempty"`
	Slug          string    `json:"slug"`
	CreatedAt     time.Time `json:"created_at"`
}

// Position is a job title held at an organization
type Position struct {
	Title            string `json:"title"`
	Current          bool   `json:"current"`
	OrganizationSlug string `json:"organization_slug,omitempty"`
}

// Positions is stored as JSONB
type Positions []Position

// Value implements the driver.Valuer interface for database storage
func (p Positions) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for database retrieval
func (p *Positions) Scan(value interface{}) error {
	if value == nil {
		*p = Positions{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		s, isString := value.(string)
		if !isString {
			return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
		}
		b = []byte(s)
	}

	return json.Unmarshal(b, p)
}
