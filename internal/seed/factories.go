// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		//nolint:gosec // Weak random number generator is fine for seeding
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`. All seed
// users share the password "password123" so any of them can be used to
// log in during development. Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	token, err := service.GenerateAccessToken()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password:    string(hashed),
		AccessToken: token,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildThought constructs a thought for the given author without
// persisting it. A nil author produces an anonymous thought.
func (f *Factory) BuildThought(author *models.User, overrides ...func(*models.Thought)) *models.Thought {
	thought := &models.Thought{
		Message: randomMessage(f.r),
		LikedBy: []uint{},
	}
	if author != nil {
		thought.Username = author.Username
		thought.UserID = &author.ID
	} else {
		thought.Username = "Anonymous"
	}

	// realistic created_at spread over the last 30 days
	daysBack := f.r.Intn(30)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	thought.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(thought)
	}
	return thought
}

// CreateThoughtsBatch persists multiple thoughts in a single DB call.
func (f *Factory) CreateThoughtsBatch(thoughts []*models.Thought) error {
	if len(thoughts) == 0 {
		return nil
	}
	return f.db.Create(&thoughts).Error
}

// LikeThought records a like from the user and bumps the hearts counter,
// keeping the counter equal to the number of like rows. Duplicate likes
// from the same user are skipped.
func (f *Factory) LikeThought(userID, thoughtID uint) error {
	var existing int64
	err := f.db.Model(&models.ThoughtLike{}).
		Where("user_id = ? AND thought_id = ?", userID, thoughtID).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.ThoughtLike{
			UserID:    userID,
			ThoughtID: thoughtID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thought{}).
			Where("id = ?", thoughtID).
			UpdateColumn("hearts", gorm.Expr("hearts + ?", 1)).Error
	})
}

// randomMessage produces a short first-person sentence that fits the
// message length bounds.
func randomMessage(r *rand.Rand) string {
	templates := []func() string{
		func() string {
			return fmt.Sprintf("Just %s a %s %s", pick(r, verbs), pick(r, adjectives), pick(r, nouns))
		},
		func() string {
			return fmt.Sprintf("Feeling %s about my %s today", pick(r, adjectives), pick(r, nouns))
		},
		func() string {
			return fmt.Sprintf("I %s something %s and I can't stop thinking about it", pick(r, verbs), pick(r, adjectives))
		},
		func() string {
			return fmt.Sprintf("My %s is finally %s", pick(r, nouns), pick(r, adjectives))
		},
		func() string {
			return gofakeit.HipsterSentence(6)
		},
	}

	msg := templates[r.Intn(len(templates))]()
	if len(msg) > models.MaxMessageLen {
		msg = msg[:models.MaxMessageLen]
	}
	for len(msg) < models.MinMessageLen {
		msg += "!"
	}
	return msg
}

func pick(r *rand.Rand, list []string) string {
	return list[r.Intn(len(list))]
}

var (
	adjectives = []string{
		"amazing", "incredible", "fascinating", "challenging", "exciting",
		"beautiful", "elegant", "robust", "simple", "strange", "quiet",
		"loud", "cozy", "chaotic", "peaceful", "wild",
	}

	nouns = []string{
		"project", "idea", "morning", "coffee", "playlist", "book",
		"garden", "recipe", "commute", "weekend", "dream", "plan",
		"routine", "desk", "notebook", "walk",
	}

	verbs = []string{
		"finished", "started", "discovered", "learned", "shared",
		"fixed", "wrote", "read", "watched", "cooked", "planted",
	}
)
