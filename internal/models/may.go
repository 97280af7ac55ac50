package models

import "time"

// May is the post entity of the application.
type May struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:30;not null" json:"title"`
	Content   string    `gorm:"size:150;not null" json:"content"`
	Published bool      `gorm:"not null;default:true" json:"published"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Votes []Vote `gorm:"foreignKey:MayID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the table name; the default pluralizer would mangle "may".
func (May) TableName() string {
	return "mayz"
}

// MaySummary is the minimal projection of a May embedded in User reads.
type MaySummary struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MayRead is the response projection for a May. The owner appears as a
// UserSummary so read projections stay acyclic.
type MayRead struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Published bool         `json:"published"`
	Likes     int          `json:"likes"`
	CreatedAt time.Time    `json:"created_at"`
	User      *UserSummary `json:"user,omitempty"`
}

// MayCreate is the creation request body. Published defaults to true when
// omitted.
type MayCreate struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

// MayUpdate carries the patchable May fields. Nil means "leave untouched".
type MayUpdate struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// Summary projects the may into its embedded form.
func (m *May) Summary() MaySummary {
	return MaySummary{ID: m.ID, Title: m.Title, Content: m.Content}
}

// Read projects the may into its response form. The owner summary is included
// only when the User association was preloaded.
func (m *May) Read() MayRead {
	read := MayRead{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Published: m.Published,
		Likes:     m.Likes,
		CreatedAt: m.CreatedAt,
	}
	if m.User.ID != 0 {
		summary := m.User.Summary()
		read.User = &summary
	}
	return read
}

// MayReads projects a slice of mayz.
func MayReads(mayz []May) []MayRead {
	reads := make([]MayRead, 0, len(mayz))
	for i := range mayz {
		reads = append(reads, mayz[i].Read())
	}
	return reads
}
