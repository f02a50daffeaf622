package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/siherrmann/linker"
	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
)

const sampleConnections = `First Name,Last Name,URL,Email Address,Company,Position,Connected On
Dr. Jane,"Doe, PMP",https://www.linkedin.com/in/jane-doe-1a2b3c,jane@example.com,"Acme, Inc.",CTO,01-Jul-25
John "Johnny",Smith,https://www.linkedin.com/in/john-smith,,Globex GmbH - Research,Engineer,02-Jul-25
Ana (Anita),García López,https://www.linkedin.com/in/ana-garcia,,Initech | Platform,Product Manager,15-Mar-24
`

const sampleMessages = `CONVERSATION ID,CONVERSATION TITLE,FROM,SENDER PROFILE URL,TO,RECIPIENT PROFILE URLS,DATE,SUBJECT,CONTENT,FOLDER
c1,Intro,Jane Doe,https://www.linkedin.com/in/jane-doe-1a2b3c,John Smith,https://www.linkedin.com/in/john-smith,2025-07-03 10:00:00 UTC,,Hi John! Coffee next week?,INBOX
c1,Intro,John Smith,https://www.linkedin.com/in/john-smith,Jane Doe,https://www.linkedin.com/in/jane-doe-1a2b3c,2025-07-03 10:05:00 UTC,,Sounds great.,INBOX
c2,,Ana García López,https://www.linkedin.com/in/ana-garcia,Someone Else,https://www.linkedin.com/in/someone-else,2025-07-04 08:00:00 UTC,,Hello there,INBOX
c3,,John Smith,https://www.linkedin.com/in/john-smith,Ana García López,https://www.linkedin.com/in/ana-garcia,2025-07-05 09:30:00 UTC,,Message request accepted,INBOX
`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	// Write a small export to a temporary folder
	dir, err := os.MkdirTemp("", "linker-example")
	if err != nil {
		log.Fatalf("Failed to create export folder: %v", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, model.DefaultConnectionsFile), []byte(sampleConnections), 0o600); err != nil {
		log.Fatalf("Failed to write connections: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, model.DefaultMessagesFile), []byte(sampleMessages), 0o600); err != nil {
		log.Fatalf("Failed to write messages: %v", err)
	}

	config := model.DefaultConfig()
	config.SourceFolder = dir
	config.TimeZone = "Europe/Berlin"

	l, err := linker.NewLinker(&config, dbConfig)
	if err != nil {
		log.Fatalf("Failed to create linker: %v", err)
	}
	defer l.Close()

	fmt.Println("Importing export...")
	summary, err := l.Import()
	if err != nil {
		log.Fatalf("Failed to import: %v", err)
	}

	fmt.Printf("\nPeople (%d):\n", len(summary.People.Entities))
	for _, person := range summary.People.Entities {
		fmt.Printf("  %-20s %-25s alias=%q organizations=%v connected=%s\n",
			person.Slug, person.Identity.FullName, person.Identity.Alias, person.Organizations, person.ConnectedOn)
	}

	fmt.Printf("\nMessages (%d, %d rejected):\n", len(summary.Messages.Entities), summary.Messages.Rejected)
	for _, message := range summary.Messages.Entities {
		fmt.Printf("  %s %s %s -> %v: %s\n", message.DateStr, message.TimeStr, message.FromSlug, message.ToSlugs, message.Body)
	}

	fmt.Printf("\nProfiles not found: %v\n", summary.NotFound)

	// Query the stored data
	found, err := l.SearchPeople("Jane", 5)
	if err != nil {
		log.Fatalf("Failed to search people: %v", err)
	}
	for _, person := range found {
		fmt.Printf("\nSearch result: %s (%s)\n", person.Identity.FullName, person.URL)

		messages, err := l.MessagesWith(person.Slug)
		if err != nil {
			log.Fatalf("Failed to select messages: %v", err)
		}
		for _, message := range messages {
			fmt.Printf("  [%s] %s: %s\n", message.Metadata.String("from_name"), message.TimeStr, message.Body)
		}
	}
}
