package repository

import (
	"database/sql"

	"github.com/lib/pq"
)

type Notification struct {
	ID      int
	UserID  int
	Type    string
	Payload []byte
	IsRead  bool
}

type NotificationsRepository struct {
	db *sql.DB
}

func NewNotificationsRepository(db *sql.DB) *NotificationsRepository {
	return &NotificationsRepository{db: db}
}

func (r *NotificationsRepository) Create(userID int, notifType string, payload []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO notifications (user_id, type, payload, created_at)
		VALUES ($1, $2, $3, NOW())
	`, userID, notifType, payload)
	return err
}

func (r *NotificationsRepository) ListUnread(userID int) ([]Notification, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, type, payload, is_read
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Notification
	for rows.Next() {
		n := Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Payload, &n.IsRead); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkRead marks the given notifications read in a single statement.
// IDs belonging to another user are silently skipped.
func (r *NotificationsRepository) MarkRead(userID int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(`
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1) AND user_id = $2
	`, pq.Array(ids), userID)
	return err
}
