package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/model"
)

type key string

const keyTxConn = key("tx_conn")

type executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Repository struct {
	connection *sqlx.DB
}

func New(cfg *config.Config) *Repository {
	conStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)

	conn, err := sqlx.Connect("postgres", conStr)
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	return &Repository{
		connection: conn,
	}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

// WithTx runs cb with a transaction bound to the context; every repository
// call made through Chk inside cb joins it.
func (r *Repository) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	dbTx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer func() {
		_ = dbTx.Rollback()
	}()

	if err := cb(context.WithValue(ctx, keyTxConn, dbTx)); err != nil {
		return err
	}

	return dbTx.Commit()
}

func (r *Repository) Chk(ctx context.Context) executor {
	if dbTx, ok := ctx.Value(keyTxConn).(*sqlx.Tx); ok {
		return dbTx
	}
	return r.connection
}

func (r *Repository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	query, args, err := sq.Select("id", "username", "email", "status", "is_admin", "created_at").
		From("users").
		Where(sq.Eq{"id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var user model.User
	err = r.Chk(ctx).GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := sq.Insert("users").
		Columns("id", "username", "email", "status", "is_admin").
		Values(user.ID, user.Username, user.Email, user.Status, user.IsAdmin).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) UpdateUserStatus(ctx context.Context, userID string, status model.UserStatus) error {
	query, args, err := sq.Update("users").
		Set("status", status).
		Where(sq.Eq{"id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

// DeleteUserData removes everything the user owns in one transaction:
// messages of the user's threads, the threads, then the user row.
func (r *Repository) DeleteUserData(ctx context.Context, userID string) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		query, args, err := sq.Delete("messages").
			Where("thread_id IN (SELECT id FROM threads WHERE owner_id = ?)", userID).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sql query: %v", err)
		}
		if _, err = r.Chk(ctx).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete user messages: %v", err)
		}

		query, args, err = sq.Delete("threads").
			Where(sq.Eq{"owner_id": userID}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sql query: %v", err)
		}
		if _, err = r.Chk(ctx).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete user threads: %v", err)
		}

		query, args, err = sq.Delete("users").
			Where(sq.Eq{"id": userID}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sql query: %v", err)
		}
		if _, err = r.Chk(ctx).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete user: %v", err)
		}

		return nil
	})
}

func (r *Repository) GetUserThreads(ctx context.Context, ownerID string) (model.ThreadList, error) {
	query, args, err := sq.Select("id", "owner_id", "title", "created_at", "last_updated").
		From("threads").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("last_updated DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var threads model.ThreadList
	err = r.Chk(ctx).SelectContext(ctx, &threads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get user threads: %v", err)
	}

	return threads, nil
}

func (r *Repository) CreateThread(ctx context.Context, ownerID, title string) (*model.Thread, error) {
	query, args, err := sq.Insert("threads").
		Columns("owner_id", "title").
		Values(ownerID, title).
		Suffix("RETURNING id, created_at, last_updated").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	thread := model.Thread{OwnerID: ownerID, Title: title}
	err = r.Chk(ctx).GetContext(ctx, &thread, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create thread: %v", err)
	}

	return &thread, nil
}

func (r *Repository) DeleteThread(ctx context.Context, threadID string) error {
	query, args, err := sq.Delete("threads").
		Where(sq.Eq{"id": threadID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) TouchThread(ctx context.Context, threadID string) error {
	query, args, err := sq.Update("threads").
		Set("last_updated", time.Now()).
		Where(sq.Eq{"id": threadID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) GetThreadMessages(ctx context.Context, threadID string) (model.MessageList, error) {
	query, args, err := sq.Select("id", "thread_id", "role", "content", "created_at").
		From("messages").
		Where(sq.Eq{"thread_id": threadID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var messages model.MessageList
	err = r.Chk(ctx).SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread messages: %v", err)
	}

	return messages, nil
}

// SaveMessage persists the message and returns a copy carrying the
// store-assigned id and timestamp.
func (r *Repository) SaveMessage(ctx context.Context, message *model.Message) (*model.Message, error) {
	query, args, err := sq.Insert("messages").
		Columns("thread_id", "role", "content").
		Values(message.ThreadID, message.Role, message.Content).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	saved := model.Message{
		ThreadID: message.ThreadID,
		Role:     message.Role,
		Content:  message.Content,
	}
	err = r.Chk(ctx).GetContext(ctx, &saved, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %v", err)
	}

	return &saved, nil
}

func (r *Repository) DeleteMessage(ctx context.Context, messageID string) error {
	query, args, err := sq.Delete("messages").
		Where(sq.Eq{"id": messageID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) DeleteThreadMessages(ctx context.Context, threadID string) error {
	query, args, err := sq.Delete("messages").
		Where(sq.Eq{"thread_id": threadID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}
