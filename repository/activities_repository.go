package repository

import (
	"database/sql"

	"flipstackk-api/models"
)

type ActivitiesRepository struct {
	db *sql.DB
}

func NewActivitiesRepository(db *sql.DB) *ActivitiesRepository {
	return &ActivitiesRepository{db: db}
}

func (r *ActivitiesRepository) CreateActivity(userID int, activityType, description string, leadID *int) (*models.Activity, error) {
	var newID int
	err := r.db.QueryRow(`
		INSERT INTO activities (user_id, type, description, lead_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`, userID, activityType, description, leadID).Scan(&newID)
	if err != nil {
		return nil, err
	}
	return r.GetActivityByID(newID)
}

func (r *ActivitiesRepository) GetActivityByID(id int) (*models.Activity, error) {
	var a models.Activity
	var leadID sql.NullInt64
	err := r.db.QueryRow(`
		SELECT id, user_id, type, description, lead_id, created_at
		FROM activities
		WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &leadID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if leadID.Valid {
		lid := int(leadID.Int64)
		a.LeadID = &lid
	}
	return &a, nil
}

// GetActivities returns a page of the team activity feed, newest first.
func (r *ActivitiesRepository) GetActivities(limit, offset int) ([]*models.Activity, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`
		SELECT id, user_id, type, description, lead_id, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		var leadID sql.NullInt64
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &leadID, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		if leadID.Valid {
			lid := int(leadID.Int64)
			a.LeadID = &lid
		}
		activities = append(activities, &a)
	}
	return activities, total, rows.Err()
}
