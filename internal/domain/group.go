package domain

// Group is a congregation small group. PastorID is the group's default
// pastor used by group-based bulk assignment; it may be reassigned or
// cleared at any time and only affects future assignments.
type Group struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	PastorID  *int32 `json:"pastor_id,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
