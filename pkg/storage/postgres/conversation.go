package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"gateway/pkg/domain"
)

const (
	conversationsTable = "conversations"
)

// ConversationByChatID returns the stored conversation for chatID, or nil when
// there is none. Inside a transaction the row is locked until commit so that
// concurrent turns of the same chat are serialized.
func (p *PgSQL) ConversationByChatID(ctx context.Context, chatID string) (*domain.Conversation, error) {
	ds := p.Builder.From(conversationsTable).Where(goqu.I("chat_id").Eq(chatID))
	if _, inTx := p.DB.(*sql.Tx); inTx {
		ds = ds.ForUpdate(exp.Wait)
	}

	var row PgConversation
	found, err := ds.Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch conversation by chat id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UpsertConversation inserts the conversation or replaces the stored one.
func (p *PgSQL) UpsertConversation(ctx context.Context, conversation *domain.Conversation) error {
	if conversation == nil || conversation.ChatID == "" {
		return fmt.Errorf("conversation without chat id")
	}

	var row PgConversation
	if err := row.FromDomain(conversation); err != nil {
		return err
	}

	_, err := p.Builder.Insert(conversationsTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("chat_id", goqu.Record{
			"language":     goqu.L("EXCLUDED.language"),
			"slots":        goqu.L("EXCLUDED.slots"),
			"metadata":     goqu.L("EXCLUDED.metadata"),
			"history":      goqu.L("EXCLUDED.history"),
			"last_updated": goqu.L("EXCLUDED.last_updated"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not upsert conversation in pg: %w", err)
	}

	return nil
}

// DeleteConversationsBefore removes conversations last updated before the
// given time.
func (p *PgSQL) DeleteConversationsBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := p.Builder.Delete(conversationsTable).
		Where(goqu.I("last_updated").Lt(before)).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete expired conversations in pg: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not count deleted conversations: %w", err)
	}

	return n, nil
}
