package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Program administrator - full access
	RoleMentor  Role = "mentor"  // Can view every trainee's attendance
	RoleTrainee Role = "trainee" // Regular training-program participant
)

type User struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	TraineeID *string
	ProgramID *string
}

// IsAdmin checks if user is a program administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsMentor checks if user is mentor or admin
func (u *User) IsMentor() bool {
	return u.Role == RoleMentor || u.Role == RoleAdmin
}

// CanViewAllAttendance checks if user can read other trainees' attendance
func (u *User) CanViewAllAttendance() bool {
	return u.IsMentor()
}
