package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"flipstackk-api/models"
)

type LeadsRepository struct {
	db *sql.DB
}

func NewLeadsRepository(db *sql.DB) *LeadsRepository {
	return &LeadsRepository{db: db}
}

// LeadUpdate carries the optional fields of a PATCH. Nil means "leave as is".
type LeadUpdate struct {
	Name            *string
	Phone           *string
	Email           *string
	PropertyAddress *string
	StatusID        *int
	AssignedTo      *int
	Notes           *string
}

const leadSelect = `
	SELECT l.id, l.name, l.phone, l.email, l.property_address, s.name,
	       l.assigned_to, l.notes, l.is_deleted, l.created_at, l.updated_at
	FROM leads l
	JOIN lead_statuses s ON s.id = l.status_id
`

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	var l models.Lead
	var assignedTo sql.NullInt64
	err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.Email, &l.PropertyAddress, &l.Status,
		&assignedTo, &l.Notes, &l.IsDeleted, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignedTo.Valid {
		uid := int(assignedTo.Int64)
		l.AssignedTo = &uid
	}
	return &l, nil
}

func (r *LeadsRepository) CreateLead(name, phone, email, propertyAddress, notes string, statusID int, assignedTo *int) (*models.Lead, error) {
	var newID int
	err := r.db.QueryRow(`
		INSERT INTO leads (name, phone, email, property_address, status_id, assigned_to, notes, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW(), NOW())
		RETURNING id
	`, name, phone, email, propertyAddress, statusID, assignedTo, notes).Scan(&newID)
	if err != nil {
		return nil, err
	}
	return r.GetLeadByID(newID)
}

func (r *LeadsRepository) GetLeadByID(id int) (*models.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(leadSelect+` WHERE l.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// GetLeads returns a page of non-deleted leads, optionally filtered by
// status ID and assignee, newest first, plus the unfiltered page total.
func (r *LeadsRepository) GetLeads(statusID, assignedTo *int, limit, offset int) ([]*models.Lead, int, error) {
	where := []string{"l.is_deleted = FALSE"}
	args := []any{}
	if statusID != nil {
		args = append(args, *statusID)
		where = append(where, fmt.Sprintf("l.status_id = $%d", len(args)))
	}
	if assignedTo != nil {
		args = append(args, *assignedTo)
		where = append(where, fmt.Sprintf("l.assigned_to = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leads l WHERE `+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(
		leadSelect+` WHERE `+cond+fmt.Sprintf(` ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	return leads, total, rows.Err()
}

func (r *LeadsRepository) UpdateLead(id int, upd LeadUpdate) (*models.Lead, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.PropertyAddress != nil {
		add("property_address", *upd.PropertyAddress)
	}
	if upd.StatusID != nil {
		add("status_id", *upd.StatusID)
	}
	if upd.AssignedTo != nil {
		add("assigned_to", *upd.AssignedTo)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}

	args = append(args, id)
	_, err := r.db.Exec(
		fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	return r.GetLeadByID(id)
}

// SetLeadDeleted sets or unsets the is_deleted flag on a lead.
func (r *LeadsRepository) SetLeadDeleted(id int, isDeleted bool) error {
	_, err := r.db.Exec(`
		UPDATE leads
		SET is_deleted = $1, updated_at = NOW()
		WHERE id = $2
	`, isDeleted, id)
	return err
}
