package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"flipstackk-api/globals"
	"flipstackk-api/models"
)

type CallsRepository struct {
	db *sql.DB
}

func NewCallsRepository(db *sql.DB) *CallsRepository {
	return &CallsRepository{db: db}
}

// CallUpdate carries the optional fields of a PATCH. Nil means "leave as is".
type CallUpdate struct {
	Status          *string
	ScheduledAt     *time.Time
	CompletedAt     *time.Time
	DurationSeconds *int
	Outcome         *string
	Notes           *string
}

const callSelect = `
	SELECT id, lead_id, user_id, status, scheduled_at, completed_at,
	       duration_seconds, outcome, notes, created_at, updated_at
	FROM calls
`

func scanCall(row interface{ Scan(...any) error }) (*models.Call, error) {
	var c models.Call
	var scheduledAt, completedAt sql.NullTime
	var duration sql.NullInt64
	var outcome sql.NullString
	err := row.Scan(
		&c.ID, &c.LeadID, &c.UserID, &c.Status, &scheduledAt, &completedAt,
		&duration, &outcome, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		c.ScheduledAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		c.CompletedAt = &t
	}
	if duration.Valid {
		d := int(duration.Int64)
		c.DurationSeconds = &d
	}
	if outcome.Valid {
		o := outcome.String
		c.Outcome = &o
	}
	return &c, nil
}

// LogCall records a completed call in the history.
func (r *CallsRepository) LogCall(leadID, userID int, durationSeconds *int, outcome *string, notes string) (*models.Call, error) {
	var newID int
	err := r.db.QueryRow(`
		INSERT INTO calls (lead_id, user_id, status, completed_at, duration_seconds, outcome, notes, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, leadID, userID, globals.CallStatusCompleted, durationSeconds, outcome, notes).Scan(&newID)
	if err != nil {
		return nil, err
	}
	return r.GetCallByID(newID)
}

// ScheduleCall records a future call.
func (r *CallsRepository) ScheduleCall(leadID, userID int, scheduledAt time.Time, notes string) (*models.Call, error) {
	var newID int
	err := r.db.QueryRow(`
		INSERT INTO calls (lead_id, user_id, status, scheduled_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`, leadID, userID, globals.CallStatusScheduled, scheduledAt, notes).Scan(&newID)
	if err != nil {
		return nil, err
	}
	return r.GetCallByID(newID)
}

func (r *CallsRepository) GetCallByID(id int) (*models.Call, error) {
	call, err := scanCall(r.db.QueryRow(callSelect+` WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return call, nil
}

// GetScheduledCalls returns upcoming calls, soonest first.
func (r *CallsRepository) GetScheduledCalls(limit, offset int) ([]*models.Call, int, error) {
	return r.getCalls(
		`status = $1`, []any{globals.CallStatusScheduled},
		`ORDER BY scheduled_at ASC`, limit, offset,
	)
}

// GetCallHistory returns finished calls (completed, missed, or
// cancelled), newest first.
func (r *CallsRepository) GetCallHistory(limit, offset int) ([]*models.Call, int, error) {
	return r.getCalls(
		`status <> $1`, []any{globals.CallStatusScheduled},
		`ORDER BY COALESCE(completed_at, updated_at) DESC`, limit, offset,
	)
}

func (r *CallsRepository) getCalls(cond string, args []any, order string, limit, offset int) ([]*models.Call, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM calls WHERE `+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(
		callSelect+` WHERE `+cond+` `+order+fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var calls []*models.Call
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, 0, err
		}
		calls = append(calls, call)
	}
	return calls, total, rows.Err()
}

func (r *CallsRepository) UpdateCall(id int, upd CallUpdate) (*models.Call, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.ScheduledAt != nil {
		add("scheduled_at", *upd.ScheduledAt)
	}
	if upd.CompletedAt != nil {
		add("completed_at", *upd.CompletedAt)
	}
	if upd.DurationSeconds != nil {
		add("duration_seconds", *upd.DurationSeconds)
	}
	if upd.Outcome != nil {
		add("outcome", *upd.Outcome)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}

	args = append(args, id)
	_, err := r.db.Exec(
		fmt.Sprintf(`UPDATE calls SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	return r.GetCallByID(id)
}
