package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/huskbot/internal/core"
)

// User is one sender seen by the bot, counted per conversation scope.
type User struct {
	ID             int64
	Scope          core.Scope
	OpenID         string
	ConversationID string
	MessageCount   int64
}

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Touch records one inbound message from the sender, creating the row
// on first contact. conversationID is the group or channel id when the
// scope has one, empty for direct chats.
func (r *UsersRepo) Touch(ctx context.Context, scope core.Scope, openID, conversationID string) error {
	query := `INSERT INTO users (scope, open_id, conversation_id, message_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (scope, open_id) DO UPDATE SET
			message_count = message_count + 1,
			conversation_id = excluded.conversation_id`
	if _, err := r.db.ExecContext(ctx, query, scope.String(), openID, conversationID); err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}
	return nil
}

// Get returns the sender's record for one scope, or nil when the
// sender has never been seen there.
func (r *UsersRepo) Get(ctx context.Context, scope core.Scope, openID string) (*User, error) {
	query := `SELECT id, scope, open_id, conversation_id, message_count
		FROM users WHERE scope = ? AND open_id = ?`
	row := r.db.QueryRowContext(ctx, query, scope.String(), openID)

	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// GroupMembers lists every sender last seen in the given group.
func (r *UsersRepo) GroupMembers(ctx context.Context, groupID string) ([]User, error) {
	query := `SELECT id, scope, open_id, conversation_id, message_count
		FROM users WHERE scope = ? AND conversation_id = ?
		ORDER BY message_count DESC`
	rows, err := r.db.QueryContext(ctx, query, core.ScopeGroup.String(), groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(scan func(dest ...any) error) (*User, error) {
	var u User
	var scope string
	if err := scan(&u.ID, &scope, &u.OpenID, &u.ConversationID, &u.MessageCount); err != nil {
		return nil, err
	}
	parsed, err := core.ParseScope(scope)
	if err != nil {
		return nil, err
	}
	u.Scope = parsed
	return &u, nil
}
