// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Mayz application. The password column
// stores a bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:15;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Nickname  string    `gorm:"size:25;not null" json:"nickname"`
	Password  string    `gorm:"not null" json:"-"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`

	Mayz []May `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"mayz,omitempty"`
}

// UserSummary is the minimal projection of a User embedded in May reads.
// Keeping it flat breaks the User<->May reference cycle.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Enabled  bool   `json:"enabled"`
}

// UserRead is the response projection for a User. It never carries the
// password hash.
type UserRead struct {
	ID        uint         `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Nickname  string       `json:"nickname"`
	Enabled   bool         `json:"enabled"`
	CreatedAt time.Time    `json:"created_at"`
	Mayz      []MaySummary `json:"mayz,omitempty"`
}

// UserCreate is the signup request body.
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// UserUpdate carries the patchable User fields. Nil means "leave untouched".
type UserUpdate struct {
	Username *string `json:"username"`
	Nickname *string `json:"nickname"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Enabled  *bool   `json:"enabled"`
}

// Summary projects the user into its embedded form.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
		Enabled:  u.Enabled,
	}
}

// Read projects the user into its response form, including owned Mayz when
// they were preloaded.
func (u *User) Read() UserRead {
	read := UserRead{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
	for i := range u.Mayz {
		read.Mayz = append(read.Mayz, u.Mayz[i].Summary())
	}
	return read
}

// UserReads projects a slice of users.
func UserReads(users []User) []UserRead {
	reads := make([]UserRead, 0, len(users))
	for i := range users {
		reads = append(reads, users[i].Read())
	}
	return reads
}
