package registry

import (
	"strconv"
	"strings"

	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
)

// Memory is an in-memory person and organization registry.
// It hands out unique person slugs, deterministic organization slugs
// and finds people by LinkedIn id. It is not safe for concurrent use.
type Memory struct {
	people        []*model.Person
	byLinkedInID  map[string]*model.Person
	personSlugs   map[string]struct{}
	organizations []*model.Organization
	bySlug        map[string]*model.Organization
}

// NewMemory creates an empty registry
func NewMemory() *Memory {
	return &Memory{
		byLinkedInID: map[string]*model.Person{},
		personSlugs:  map[string]struct{}{},
		bySlug:       map[string]*model.Organization{},
	}
}

// PersonSlug reserves and returns a unique slug for identity.
// A second "Jane Doe" gets "jane-doe-2".
func (m *Memory) PersonSlug(identity model.Identity) string {
	base := helper.Slugify(identityName(identity))
	if base == "" {
		base = "person"
	}

	slug := base
	for i := 2; m.hasPersonSlug(slug); i++ {
		slug = base + "-" + strconv.Itoa(i)
	}
	m.personSlugs[slug] = struct{}{}

	return slug
}

// OrganizationSlug returns the slug of the organization named name,
// registering the organization on first use. Names slugging to the same
// value share one organization. An empty name gives an empty slug.
func (m *Memory) OrganizationSlug(name string) string {
	slug := helper.Slugify(name)
	if slug == "" {
		return ""
	}

	if _, ok := m.bySlug[slug]; !ok {
		organization := &model.Organization{Name: strings.TrimSpace(name), Slug: slug}
		m.bySlug[slug] = organization
		m.organizations = append(m.organizations, organization)
	}

	return slug
}

// AddPerson makes person findable by LinkedIn id and reserves its slug.
// The first person registered for a LinkedIn id wins.
func (m *Memory) AddPerson(person *model.Person) {
	if person == nil {
		return
	}

	m.people = append(m.people, person)
	if person.Slug != "" {
		m.personSlugs[person.Slug] = struct{}{}
	}
	if person.LinkedInID == "" {
		return
	}
	if _, exists := m.byLinkedInID[person.LinkedInID]; !exists {
		m.byLinkedInID[person.LinkedInID] = person
	}
}

// AddOrganization registers an already stored organization
func (m *Memory) AddOrganization(organization *model.Organization) {
	if organization == nil || organization.Slug == "" {
		return
	}
	if _, exists := m.bySlug[organization.Slug]; exists {
		return
	}
	m.bySlug[organization.Slug] = organization
	m.organizations = append(m.organizations, organization)
}

// PersonByLinkedInID returns the person registered for key
func (m *Memory) PersonByLinkedInID(key string) (*model.Person, bool) {
	person, ok := m.byLinkedInID[key]
	return person, ok
}

// Organization returns the organization with slug
func (m *Memory) Organization(slug string) (*model.Organization, bool) {
	organization, ok := m.bySlug[slug]
	return organization, ok
}

// People returns the registered people in registration order
func (m *Memory) People() []*model.Person {
	people := make([]*model.Person, len(m.people))
	copy(people, m.people)
	return people
}

// Organizations returns the registered organizations in registration order
func (m *Memory) Organizations() []*model.Organization {
	organizations := make([]*model.Organization, len(m.organizations))
	copy(organizations, m.organizations)
	return organizations
}

func (m *Memory) hasPersonSlug(slug string) bool {
	_, ok := m.personSlugs[slug]
	return ok
}

func identityName(identity model.Identity) string {
	if name := identity.Name(); name != "" {
		return name
	}
	return identity.Alias
}
