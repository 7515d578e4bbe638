package seed

import (
	"fmt"
	"log"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumThoughts int
	ShouldClean bool
}

// Seed populates the database with test data: users, a mix of owned and
// anonymous thoughts, and a like graph whose hearts counters match the
// recorded likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d thoughts...",
		opts.NumUsers, opts.NumThoughts)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	thoughts := make([]*models.Thought, 0, opts.NumThoughts)
	for i := 0; i < opts.NumThoughts; i++ {
		// roughly one in five thoughts is anonymous
		var author *models.User
		if len(users) > 0 && factory.r.Intn(5) != 0 {
			author = users[factory.r.Intn(len(users))]
		}
		thoughts = append(thoughts, factory.BuildThought(author))
	}
	if err := factory.CreateThoughtsBatch(thoughts); err != nil {
		return fmt.Errorf("failed to create thoughts: %w", err)
	}
	log.Printf("✓ %d thoughts created", len(thoughts))

	likes, err := seedLikes(factory, users, thoughts)
	if err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}
	log.Printf("✓ %d likes recorded", likes)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// seedLikes gives each thought a random subset of likers. Popularity is
// skewed so sorting by hearts produces a meaningful order.
func seedLikes(factory *Factory, users []*models.User, thoughts []*models.Thought) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	total := 0
	for _, thought := range thoughts {
		// most thoughts get a few likes, a handful get many
		maxLikes := factory.r.Intn(4)
		if factory.r.Intn(10) == 0 {
			maxLikes = factory.r.Intn(len(users)) + 1
		}

		perm := factory.r.Perm(len(users))
		for i := 0; i < maxLikes && i < len(perm); i++ {
			if err := factory.LikeThought(users[perm[i]].ID, thought.ID); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// ClearAll removes all seeded data and resets identity counters.
func ClearAll(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE thought_likes, thoughts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
