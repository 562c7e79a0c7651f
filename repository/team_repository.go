package repository

import (
	"database/sql"

	"flipstackk-api/globals"
	"flipstackk-api/models"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetTeamPerformance aggregates per-member counters for the dashboard.
// closedStatusID is the lead_statuses row representing a closed deal.
func (r *TeamRepository) GetTeamPerformance(closedStatusID int) ([]*models.TeamMemberStats, error) {
	rows, err := r.db.Query(`
		SELECT u.id, u.username, u.full_name,
		       COUNT(DISTINCT c_done.id)  AS calls_completed,
		       COUNT(DISTINCT c_sched.id) AS calls_scheduled,
		       COUNT(DISTINCT l.id)       AS leads_created,
		       COUNT(DISTINCT l_closed.id) AS leads_closed
		FROM users u
		LEFT JOIN calls c_done  ON c_done.user_id = u.id AND c_done.status = $1
		LEFT JOIN calls c_sched ON c_sched.user_id = u.id AND c_sched.status = $2
		LEFT JOIN leads l       ON l.assigned_to = u.id AND l.is_deleted = FALSE
		LEFT JOIN leads l_closed ON l_closed.assigned_to = u.id
			AND l_closed.status_id = $3 AND l_closed.is_deleted = FALSE
		GROUP BY u.id, u.username, u.full_name
		ORDER BY calls_completed DESC, u.id
	`, globals.CallStatusCompleted, globals.CallStatusScheduled, closedStatusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.TeamMemberStats
	for rows.Next() {
		var s models.TeamMemberStats
		if err := rows.Scan(&s.UserID, &s.Username, &s.FullName,
			&s.CallsCompleted, &s.CallsScheduled, &s.LeadsCreated, &s.LeadsClosed); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
