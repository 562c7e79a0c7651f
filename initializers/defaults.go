package initializers

import (
	"database/sql"

	"flipstackk-api/globals"
)

// leadStatusNames is the pipeline order shown on the dashboard board.
var leadStatusNames = []string{"new", "contacted", "negotiating", "under_contract", "closed", "dead"}

// InitDefaults is called once on application start to ensure the lead
// status rows exist and to cache their IDs for handlers.
func InitDefaults(db *sql.DB) error {
	for _, name := range leadStatusNames {
		id, err := ensureLeadStatus(db, name)
		if err != nil {
			return err
		}
		globals.LeadStatusIDByName[name] = id
		globals.LeadStatusNameByID[id] = name
	}
	globals.DefaultNewLeadStatusID = globals.LeadStatusIDByName["new"]
	return nil
}

func ensureLeadStatus(db *sql.DB, name string) (int, error) {
	var id int
	err := db.QueryRow("SELECT id FROM lead_statuses WHERE name = $1", name).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.QueryRow("INSERT INTO lead_statuses (name) VALUES ($1) RETURNING id", name).Scan(&id)
		if err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}
	return id, nil
}
