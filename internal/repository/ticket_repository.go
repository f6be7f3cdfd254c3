// Package repository contains data access logic for tickets. A Ticket
// records a purchase of some quantity of admissions to one showtime by one
// account. Tickets are never updated or deleted in the normal flow; there is
// no seat or hall-capacity model, so the quantity is bounded below only.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Ticket mirrors the 'tickets' table.
type Ticket struct {
	ID         uint64    `json:"id"`
	AccountID  uint64    `json:"account_id"`
	ScheduleID uint64    `json:"schedule_id"`
	Quantity   uint32    `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// TicketDetail is one row of an account's purchase history, resolved across
// ticket -> schedule -> movie. It is shaped for display to the customer.
type TicketDetail struct {
	TicketID   uint64 `json:"ticket_id"`
	MovieTitle string `json:"movie_title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Hall       uint32 `json:"hall"`
	Quantity   uint32 `json:"quantity"`
	PriceCents uint32 `json:"price_cents"`
}

// TicketRepo manages persistence for tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// Create inserts a ticket after verifying that the account and schedule both
// exist. The reference checks and the insert share one transaction so a
// concurrent delete cannot leave a dangling reference. Quantity must be at
// least 1; no upper bound is enforced at this layer.
func (r *TicketRepo) Create(ctx context.Context, t *Ticket) (err error) {
	if t.Quantity < 1 {
		return ErrInvalidQuantity
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = ? LIMIT 1`, t.AccountID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return err
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM schedules WHERE id = ? LIMIT 1`, t.ScheduleID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotFound
		}
		return err
	}

	const q = `INSERT INTO tickets (account_id, schedule_id, quantity) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.AccountID, t.ScheduleID, t.Quantity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	// Query back the row to pick up the creation timestamp.
	const sel = `SELECT created_at FROM tickets WHERE id = ?`
	err = tx.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt)
	return err
}

// ListByAccount returns the purchase history for an account, newest first.
func (r *TicketRepo) ListByAccount(ctx context.Context, accountID uint64) ([]TicketDetail, error) {
	const q = `SELECT t.id, m.title, s.show_date, s.show_time, s.hall, t.quantity, s.price_cents
               FROM tickets t
               JOIN schedules s ON s.id = t.schedule_id
               JOIN movies m ON m.id = s.movie_id
               WHERE t.account_id = ?
               ORDER BY t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []TicketDetail
	for rows.Next() {
		var d TicketDetail
		if err := rows.Scan(&d.TicketID, &d.MovieTitle, &d.Date, &d.Time, &d.Hall, &d.Quantity, &d.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
