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

// MessagesDBHandlerFunctions defines the interface for Messages database operations.
type MessagesDBHandlerFunctions interface {
	InsertMessage(message *model.Message) error
	SelectMessage(rid uuid.UUID) (*model.Message, error)
	SelectMessagesByPerson(slug string) ([]*model.Message, error)
	SelectMessagesByConversation(conversationID string) ([]*model.Message, error)
	DeleteMessage(rid uuid.UUID) error
}

// MessagesDBHandler handles message-related database operations
type MessagesDBHandler struct {
	db *helper.Database
}

// NewMessagesDBHandler creates a new messages database handler.
// If force is true, it will reload the SQL functions even if they already exist.
func NewMessagesDBHandler(db *helper.Database, force bool) (*MessagesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	messagesDbHandler := &MessagesDBHandler{
		db: db,
	}

	err := sql.LoadMessagesSql(messagesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load messages sql", err)
	}

	err = messagesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized MessagesDBHandler")

	return messagesDbHandler, nil
}

// CreateTable creates the 'messages' table in the database.
// If the table already exists, it does not create it again.
func (h *MessagesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_messages();`)
	if err != nil {
		log.Panicf("error initializing messages table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table messages")

	return nil
}

// InsertMessage inserts a message. Importing the same message twice
// returns the stored one.
func (h *MessagesDBHandler) InsertMessage(message *model.Message) error {
	var rid *uuid.UUID
	if message.RID != uuid.Nil {
		rid = &message.RID
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_message($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rid,
		message.Service,
		message.ConversationID,
		message.ConversationTitle,
		message.Subject,
		message.Folder,
		message.FromSlug,
		pq.Array(message.ToSlugs),
		message.Body,
		message.DateStr,
		message.TimeStr,
		message.Timestamp,
		message.Metadata,
	)

	err := scanMessage(row, message)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectMessage retrieves a message by RID
func (h *MessagesDBHandler) SelectMessage(rid uuid.UUID) (*model.Message, error) {
	message := &model.Message{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_message($1)`,
		rid,
	)

	err := scanMessage(row, message)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return message, nil
}

// SelectMessagesByPerson retrieves all messages sent or received by a person, oldest first
func (h *MessagesDBHandler) SelectMessagesByPerson(slug string) ([]*model.Message, error) {
	return h.selectMany(`SELECT * FROM select_messages_by_person($1)`, slug)
}

// SelectMessagesByConversation retrieves the messages of a conversation, oldest first
func (h *MessagesDBHandler) SelectMessagesByConversation(conversationID string) ([]*model.Message, error) {
	return h.selectMany(`SELECT * FROM select_messages_by_conversation($1)`, conversationID)
}

// DeleteMessage deletes a message by RID
func (h *MessagesDBHandler) DeleteMessage(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_message($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *MessagesDBHandler) selectMany(query string, args ...interface{}) ([]*model.Message, error) {
	rows, err := h.db.Instance.Query(query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		message := &model.Message{}
		err := scanMessage(rows, message)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		messages = append(messages, message)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return messages, nil
}

func scanMessage(row scanner, message *model.Message) error {
	return row.Scan(
		&message.ID,
		&message.RID,
		&message.Service,
		&message.ConversationID,
		&message.ConversationTitle,
		&message.Subject,
		&message.Folder,
		&message.FromSlug,
		pq.Array(&message.ToSlugs),
		&message.Body,
		&message.DateStr,
		&message.TimeStr,
		&message.Timestamp,
		&message.Metadata,
		&message.CreatedAt,
	)
}
