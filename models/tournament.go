package models

// Tournament is what a roster source hands out for a tournament identifier.
type Tournament struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Teams Roster `json:"teams" db:"-"`
}

// Team returns the team at a roster position, or nil when pos is nil or out of range.
func (t *Tournament) Team(pos *int) *Team {
	if pos == nil || *pos < 0 || *pos >= len(t.Teams) {
		return nil
	}
	return &t.Teams[*pos]
}
