package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edugen/internal/domain"

	"github.com/jmoiron/sqlx"
	go_ora "github.com/sijms/go-ora/v2"
)

const (
	selectSlotQuery = `SELECT slot_value FROM kv_slots WHERE slot_key = :1`
	upsertSlotQuery = `MERGE INTO kv_slots t
USING (SELECT :1 AS slot_key FROM dual) s
ON (t.slot_key = s.slot_key)
WHEN MATCHED THEN UPDATE SET t.slot_value = :2, t.updated_at = SYSTIMESTAMP
WHEN NOT MATCHED THEN INSERT (slot_key, slot_value, updated_at) VALUES (:3, :4, SYSTIMESTAMP)`
)

// OracleKV keeps slots in the kv_slots table.
type OracleKV struct {
	db *sqlx.DB
}

func NewOracleKV(db *sqlx.DB) *OracleKV {
	return &OracleKV{db: db}
}

func (o *OracleKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := o.db.GetContext(ctx, &value, selectSlotQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrSlotEmpty
		}
		return "", fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, nil
}

// Set binds the value as a CLOB so slots larger than the VARCHAR2 bind limit
// still round-trip.
func (o *OracleKV) Set(ctx context.Context, key string, value string) error {
	clob := go_ora.Clob{String: value, Valid: true}
	if _, err := o.db.ExecContext(ctx, upsertSlotQuery, key, clob, key, clob); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

func (o *OracleKV) Ping(ctx context.Context) error {
	return o.db.PingContext(ctx)
}

var _ domain.KeyValueStore = (*OracleKV)(nil)
