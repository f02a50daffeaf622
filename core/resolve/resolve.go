package resolve

import (
	"log/slog"
	"strings"

	"github.com/siherrmann/linker/model"
)

// ProfileURLPrefix is stripped from profile URLs to get the LinkedIn id
const ProfileURLPrefix = "https://www.linkedin.com/in/"

// PersonFinder looks up a previously ingested person by LinkedIn id
type PersonFinder interface {
	PersonByLinkedInID(key string) (*model.Person, bool)
}

// Resolver resolves message participants to known people.
// Keys that fail to resolve are collected and reported once each.
// A Resolver lives for one messages ingestion run.
type Resolver struct {
	finder   PersonFinder
	notFound map[string]struct{}
	missing  []string
	log      *slog.Logger
}

// New creates a resolver reading from finder
func New(finder PersonFinder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		finder:   finder,
		notFound: map[string]struct{}{},
		log:      logger,
	}
}

// KeyFromProfileURL strips ProfileURLPrefix and surrounding slashes from url
func KeyFromProfileURL(url string) string {
	key := strings.TrimPrefix(strings.TrimSpace(url), ProfileURLPrefix)
	return strings.Trim(key, "/")
}

// Resolve returns the person with LinkedIn id key.
// People without a slug count as not found.
func (r *Resolver) Resolve(key string) (*model.Person, bool) {
	if key != "" && r.finder != nil {
		person, ok := r.finder.PersonByLinkedInID(key)
		if ok && person != nil && person.Slug != "" {
			return person, true
		}
	}

	r.markNotFound(key)
	return nil, false
}

// Sender resolves the sender profile URL of a message
func (r *Resolver) Sender(profileURL string) (*model.Person, bool) {
	return r.Resolve(KeyFromProfileURL(profileURL))
}

// Recipient resolves the first of the ";" separated recipient profile URLs
func (r *Resolver) Recipient(profileURLs string) (*model.Person, bool) {
	first, _, _ := strings.Cut(profileURLs, ";")
	return r.Resolve(KeyFromProfileURL(first))
}

// NotFound returns the unresolved keys in the order they were first seen
func (r *Resolver) NotFound() []string {
	missing := make([]string, len(r.missing))
	copy(missing, r.missing)
	return missing
}

func (r *Resolver) markNotFound(key string) {
	if key == "" {
		return
	}
	if _, seen := r.notFound[key]; seen {
		return
	}

	r.notFound[key] = struct{}{}
	r.missing = append(r.missing, key)
	r.log.Warn("Profile not found", slog.String("linkedin_id", key))
}
