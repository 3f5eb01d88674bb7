package model

// Role is the access tier attached to a user account
type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
	RoleNone      Role = "none"
)

func (r Role) IsValid() bool {
	return r == RoleVolunteer || r == RoleAdmin || r == RoleNone
}

// Urgency is the priority tier of an event
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// User represents a signed-up account as returned by the auth endpoints
type User struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	State  string   `json:"state,omitempty"`
	Role   Role     `json:"role,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// Event represents an event annotated for the viewing user.
// IsRegistered, MatchingSkills and SkillMatchCount are only populated when
// the listing was scoped to a user id.
type Event struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Location          string   `json:"location"`
	Date              string   `json:"date,omitempty"`
	TimeLabel         string   `json:"time_label"`
	Urgency           Urgency  `json:"urgency"`
	MaxVolunteers     int      `json:"max_volunteers"`
	CurrentVolunteers int      `json:"current_volunteers"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
	OwnerID           int      `json:"ownerid,omitempty"`
	SkillMatchCount   int      `json:"skill_match_count,omitempty"`
	MatchingSkills    []string `json:"matching_skills,omitempty"`
	IsSkillMatch      bool     `json:"is_skill_match,omitempty"`
	IsRegistered      bool     `json:"is_registered,omitempty"`
}

// Volunteer is a volunteer profile entry. UserID links it back to the
// account that owns it.
type Volunteer struct {
	ID           int      `json:"id"`
	UserID       int      `json:"user_id"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

// Match records that a volunteer is registered for an event
type Match struct {
	ID            int    `json:"id"`
	VolunteerID   int    `json:"volunteer_id"`
	VolunteerName string `json:"volunteer_name,omitempty"`
	EventID       int    `json:"event_id"`
	EventName     string `json:"event_name,omitempty"`
	Status        string `json:"status,omitempty"`
	MatchedAt     string `json:"matched_at,omitempty"`
}

// Task is a unit of scored work under an event. Score is the task's maximum
// score until the owning admin rates it, after which the server may lower it.
// VolunteerID is nil while the task is unclaimed.
type Task struct {
	ID          int    `json:"id"`
	EventID     int    `json:"event_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Completed   bool   `json:"completed"`
	VolunteerID *int   `json:"volunteer_id"`
}

// Assigned reports whether the task has been claimed by a volunteer
func (t Task) Assigned() bool {
	return t.VolunteerID != nil
}

// Notification is one entry in the user's notification panel
type Notification struct {
	ID      int    `json:"id"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

// LeaderboardEntry is one row of the points leaderboard
type LeaderboardEntry struct {
	Name        string `json:"name"`
	VolunteerID int    `json:"volunteer_id"`
	TotalPoints int    `json:"total_points"`
}

// AttendanceRecord is one row of the admin's volunteer-attendance table
type AttendanceRecord struct {
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
	EventName   string `json:"eventName"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	EventID     int    `json:"event_id"`
	VolunteerID int    `json:"volunteer_id"`
}
