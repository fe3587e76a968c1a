package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/restaurant-booking/internal/model"
)

// ReceiptRepo archives checked out carts in the order_receipts and
// order_receipt_lines tables (see migrations/001_order_receipts.sql).
// The archive is write-mostly: nothing in the booking flow reads it back,
// only the admin receipts listing.
type ReceiptRepo struct {
	db *sql.DB
}

// NewReceiptRepo returns a ReceiptRepo bound to db.
func NewReceiptRepo(db *sql.DB) *ReceiptRepo { return &ReceiptRepo{db: db} }

// Create inserts the receipt and its lines in one transaction.
func (r *ReceiptRepo) Create(ctx context.Context, rc model.Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO order_receipts (id, session_id, customer_name, seat_id, subtotal, tax, total, placed_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, rc.ID, rc.SessionID, rc.CustomerName, rc.SeatID,
		rc.Subtotal, rc.Tax, rc.Total, rc.PlacedAt); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("insert receipt %s: %w", rc.ID, ErrConflict)
		}
		return fmt.Errorf("insert receipt: %w", err)
	}

	if len(rc.Lines) > 0 {
		query := `INSERT INTO order_receipt_lines (receipt_id, item_id, name, price, quantity) VALUES `
		args := make([]interface{}, 0, len(rc.Lines)*5)
		for i, l := range rc.Lines {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, rc.ID, l.ID, l.Name, l.Price, l.Quantity)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert receipt lines: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Get returns one receipt with its lines, or ErrReceiptNotFound.
func (r *ReceiptRepo) Get(ctx context.Context, id string) (model.Receipt, error) {
	var rc model.Receipt
	const q = `SELECT id, session_id, customer_name, seat_id, subtotal, tax, total, placed_at
	           FROM order_receipts WHERE id = ?`
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rc.ID, &rc.SessionID, &rc.CustomerName, &rc.SeatID,
		&rc.Subtotal, &rc.Tax, &rc.Total, &rc.PlacedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Receipt{}, ErrReceiptNotFound
	}
	if err != nil {
		return model.Receipt{}, err
	}

	const lq = `SELECT item_id, name, price, quantity FROM order_receipt_lines
	            WHERE receipt_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, lq, id)
	if err != nil {
		return model.Receipt{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ID, &l.Name, &l.Price, &l.Quantity); err != nil {
			return model.Receipt{}, err
		}
		rc.Lines = append(rc.Lines, l)
	}
	return rc, rows.Err()
}

// ListRecent returns up to limit receipts, newest first, with their lines.
func (r *ReceiptRepo) ListRecent(ctx context.Context, limit int) ([]model.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT id, session_id, customer_name, seat_id, subtotal, tax, total, placed_at
	           FROM order_receipts
	           ORDER BY placed_at DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Receipt
	pos := map[string]int{}
	for rows.Next() {
		var rc model.Receipt
		if err := rows.Scan(&rc.ID, &rc.SessionID, &rc.CustomerName, &rc.SeatID,
			&rc.Subtotal, &rc.Tax, &rc.Total, &rc.PlacedAt); err != nil {
			return nil, err
		}
		pos[rc.ID] = len(out)
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]interface{}, 0, len(out))
	for _, rc := range out {
		ids = append(ids, rc.ID)
	}
	lq := `SELECT receipt_id, item_id, name, price, quantity
	       FROM order_receipt_lines
	       WHERE receipt_id IN (?` + strings.Repeat(",?", len(ids)-1) + `)
	       ORDER BY id`
	lrows, err := r.db.QueryContext(ctx, lq, ids...)
	if err != nil {
		return nil, err
	}
	defer lrows.Close()
	for lrows.Next() {
		var rid string
		var l model.CartLine
		if err := lrows.Scan(&rid, &l.ID, &l.Name, &l.Price, &l.Quantity); err != nil {
			return nil, err
		}
		if i, ok := pos[rid]; ok {
			out[i].Lines = append(out[i].Lines, l)
		}
	}
	return out, lrows.Err()
}
