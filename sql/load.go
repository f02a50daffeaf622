package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed people.sql
var peopleSQL string

//go:embed organizations.sql
var organizationsSQL string

//go:embed messages.sql
var messagesSQL string

// Function lists for verification
var PeopleFunctions = []string{
	"init_people",
	"insert_person",
	"select_person",
	"select_person_by_slug",
	"select_person_by_linkedin_id",
	"select_all_people",
	"search_people",
	"delete_person",
}

var OrganizationsFunctions = []string{
	"init_organizations",
	"insert_organization",
	"select_organization_by_slug",
	"select_all_organizations",
	"delete_organization",
}

var MessagesFunctions = []string{
	"init_messages",
	"insert_message",
	"select_message",
	"select_messages_by_person",
	"select_messages_by_conversation",
	"delete_message",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadPeopleSql loads people-related SQL functions
func LoadPeopleSql(db *sql.DB, force bool) error {
	return loadSql(db, "people", peopleSQL, PeopleFunctions, force)
}

// LoadOrganizationsSql loads organization-related SQL functions
func LoadOrganizationsSql(db *sql.DB, force bool) error {
	return loadSql(db, "organizations", organizationsSQL, OrganizationsFunctions, force)
}

// LoadMessagesSql loads message-related SQL functions
func LoadMessagesSql(db *sql.DB, force bool) error {
	return loadSql(db, "messages", messagesSQL, MessagesFunctions, force)
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadPeopleSql(db, force); err != nil {
		return err
	}

	if err := LoadOrganizationsSql(db, force); err != nil {
		return err
	}

	if err := LoadMessagesSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadSql executes script unless all functions already exist or force is set
func loadSql(db *sql.DB, name string, script string, functions []string, force bool) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(script)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
