package repos

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"onestop/internal/domain"
)

const DefaultHistoryLimit = 20

type ChatRepo struct {
	db  *sqlx.DB
	mu  sync.Mutex // serializes appends
	now func() time.Time
}

func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db, now: time.Now}
}

// Append stores one exchange with a server-assigned UTC timestamp.
func (r *ChatRepo) Append(ctx context.Context, slug, userMsg, aiReply, model string) (domain.Exchange, error) {
	e := domain.Exchange{
		TS:    r.now().UTC().Format(time.RFC3339Nano),
		Slug:  slug,
		User:  userMsg,
		AI:    aiReply,
		Model: model,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_logs (ts, product_slug, user_msg, ai_reply, model_tag)
		VALUES (?, ?, ?, ?, ?)
	`, e.TS, e.Slug, e.User, e.AI, e.Model)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("insert chat log: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

// Recent returns up to limit of the latest exchanges for slug, oldest first.
// A non-positive limit falls back to DefaultHistoryLimit.
func (r *ChatRepo) Recent(ctx context.Context, slug string, limit int) ([]domain.Exchange, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	out := []domain.Exchange{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, COALESCE(ts,'') AS ts, COALESCE(product_slug,'') AS product_slug,
		       COALESCE(user_msg,'') AS user_msg, COALESCE(ai_reply,'') AS ai_reply,
		       COALESCE(model_tag,'') AS model_tag
		FROM chat_logs
		WHERE product_slug = ?
		ORDER BY id DESC
		LIMIT ?
	`, slug, limit)
	if err != nil {
		return nil, fmt.Errorf("select chat logs: %w", err)
	}
	slices.Reverse(out)
	return out, nil
}

// Count reports how many exchanges are stored.
func (r *ChatRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM chat_logs`)
	return n, err
}
