// Package seed populates the database with demo data. It is intended for
// development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"mayz/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "password123"

// Options controls how much data a run produces.
type Options struct {
	Users int
	Mayz  int
	Clean bool
}

// Seeder creates demo users, mayz and votes.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
	hash string
}

// NewSeeder creates a Seeder bound to the provided Gorm DB. The bcrypt hash
// for DefaultPassword is computed once and shared by every seeded user.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		hash: string(hashed),
	}, nil
}

// Run seeds users, mayz and votes per the options.
func (s *Seeder) Run(opts Options) error {
	if opts.Clean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.SeedUsers(opts.Users)
	if err != nil {
		return fmt.Errorf("user seeding failed: %w", err)
	}
	log.Printf("✓ Created %d users", len(users))

	mayz, err := s.SeedMayz(users, opts.Mayz)
	if err != nil {
		return fmt.Errorf("may seeding failed: %w", err)
	}
	log.Printf("✓ Created %d mayz", len(mayz))

	votes, err := s.SeedVotes(users, mayz)
	if err != nil {
		return fmt.Errorf("vote seeding failed: %w", err)
	}
	log.Printf("✓ Created %d votes", votes)

	return nil
}

// ClearAll deletes all seedable rows, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Vote{}, &models.May{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	log.Println("✓ Cleared existing data")
	return nil
}

// SeedUsers creates n accounts with generated identities. Usernames are
// regenerated on collision with the unique index.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)

	for i := 0; i < n; i++ {
		user := &models.User{
			Username: s.username(i),
			Email:    gofakeit.Email(),
			Nickname: truncate(gofakeit.Name(), 25),
			Password: s.hash,
			Enabled:  true,
		}
		user.CreatedAt = s.pastTime(120)

		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// SeedMayz creates n mayz spread across the given users.
func (s *Seeder) SeedMayz(users []*models.User, n int) ([]*models.May, error) {
	if len(users) == 0 {
		return nil, nil
	}

	mayz := make([]*models.May, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rand.Intn(len(users))]
		may := &models.May{
			Title:     truncate(gofakeit.Sentence(4), 30),
			Content:   truncate(gofakeit.Paragraph(1, 2, 8, " "), 150),
			Published: s.rand.Intn(10) != 0,
			UserID:    owner.ID,
		}
		may.CreatedAt = s.pastTime(90)

		if err := s.db.Create(may).Error; err != nil {
			return nil, err
		}
		mayz = append(mayz, may)
	}

	return mayz, nil
}

// SeedVotes has each user vote on a random subset of mayz, then recomputes
// every may's likes as the net vote score.
func (s *Seeder) SeedVotes(users []*models.User, mayz []*models.May) (int, error) {
	if len(users) == 0 || len(mayz) == 0 {
		return 0, nil
	}

	created := 0
	for _, user := range users {
		for _, may := range mayz {
			// roughly a third of user/may pairs get a vote, mostly up
			if s.rand.Intn(3) != 0 {
				continue
			}
			vt := models.VoteUp
			if s.rand.Intn(4) == 0 {
				vt = models.VoteDown
			}

			vote := &models.Vote{UserID: user.ID, MayID: may.ID, VoteType: vt}
			if err := s.db.Create(vote).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	err := s.db.Exec(`UPDATE mayz SET likes = COALESCE(
		(SELECT SUM(vote_type) FROM votes WHERE votes.may_id = mayz.id), 0)`).Error
	if err != nil {
		return created, fmt.Errorf("failed to recompute likes: %w", err)
	}

	return created, nil
}

// username builds a handle that fits the 15-character column and its
// format rules. The index suffix guarantees uniqueness within a run.
func (s *Seeder) username(i int) string {
	base := strings.ToLower(gofakeit.FirstName())
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, base)
	if len(base) > 10 {
		base = base[:10]
	}
	if len(base) < 3 {
		base = "user"
	}
	return fmt.Sprintf("%s%d", base, 100+i)
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	minsBack := s.rand.Intn(24 * 60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)
}

func truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	return strings.TrimSpace(v[:max])
}
