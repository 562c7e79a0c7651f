package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Attachment is a document stored against a lead (contract, photo, deed).
type Attachment struct {
	ID        string
	LeadID    int
	UserID    int
	FileName  string
	FileType  string
	FileSize  int64
	CreatedAt time.Time
}

type AttachmentsRepository struct {
	db *sql.DB
}

func NewAttachmentsRepository(db *sql.DB) *AttachmentsRepository {
	return &AttachmentsRepository{db: db}
}

func (r *AttachmentsRepository) CreateAttachment(leadID, userID int, fileName, fileType string, fileSize int64) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO attachments (id, lead_id, user_id, file_name, file_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, id, leadID, userID, fileName, fileType, fileSize)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *AttachmentsRepository) GetAttachmentByID(attID string) (*Attachment, error) {
	var a Attachment
	err := r.db.QueryRow(`
		SELECT id, lead_id, user_id, file_name, file_type, file_size, created_at
		FROM attachments
		WHERE id = $1
	`, attID).Scan(&a.ID, &a.LeadID, &a.UserID, &a.FileName, &a.FileType, &a.FileSize, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
