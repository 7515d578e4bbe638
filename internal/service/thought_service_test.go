package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// thoughtRepoStub is a stub for repository.ThoughtRepository.
type thoughtRepoStub struct {
	createFn        func(context.Context, *models.Thought) error
	getByIDFn       func(context.Context, uint) (*models.Thought, error)
	listRecentFn    func(context.Context, int) ([]*models.Thought, error)
	listByHeartsFn  func(context.Context) ([]*models.Thought, error)
	listLikedByFn   func(context.Context, uint) ([]*models.Thought, error)
	countFn         func(context.Context) (int64, error)
	getByOffsetFn   func(context.Context, int) (*models.Thought, error)
	updateMessageFn func(context.Context, uint, string) error
	deleteFn        func(context.Context, uint) error
	likeFn          func(context.Context, uint, uint) (bool, error)
	isLikedByFn     func(context.Context, uint, uint) (bool, error)
}

func (s *thoughtRepoStub) Create(ctx context.Context, thought *models.Thought) error {
	return s.createFn(ctx, thought)
}
func (s *thoughtRepoStub) GetByID(ctx context.Context, id uint) (*models.Thought, error) {
	return s.getByIDFn(ctx, id)
}
func (s *thoughtRepoStub) ListRecent(ctx context.Context, limit int) ([]*models.Thought, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *thoughtRepoStub) ListByHearts(ctx context.Context) ([]*models.Thought, error) {
	return s.listByHeartsFn(ctx)
}
func (s *thoughtRepoStub) ListLikedBy(ctx context.Context, userID uint) ([]*models.Thought, error) {
	return s.listLikedByFn(ctx, userID)
}
func (s *thoughtRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *thoughtRepoStub) GetByOffset(ctx context.Context, offset int) (*models.Thought, error) {
	return s.getByOffsetFn(ctx, offset)
}
func (s *thoughtRepoStub) UpdateMessage(ctx context.Context, id uint, message string) error {
	return s.updateMessageFn(ctx, id, message)
}
func (s *thoughtRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *thoughtRepoStub) Like(ctx context.Context, userID, thoughtID uint) (bool, error) {
	return s.likeFn(ctx, userID, thoughtID)
}
func (s *thoughtRepoStub) IsLikedBy(ctx context.Context, userID, thoughtID uint) (bool, error) {
	return s.isLikedByFn(ctx, userID, thoughtID)
}

func noopThoughtRepo() *thoughtRepoStub {
	return &thoughtRepoStub{
		createFn:        func(_ context.Context, _ *models.Thought) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Thought, error) { return &models.Thought{}, nil },
		listRecentFn:    func(_ context.Context, _ int) ([]*models.Thought, error) { return nil, nil },
		listByHeartsFn:  func(_ context.Context) ([]*models.Thought, error) { return nil, nil },
		listLikedByFn:   func(_ context.Context, _ uint) ([]*models.Thought, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
		getByOffsetFn:   func(_ context.Context, _ int) (*models.Thought, error) { return &models.Thought{}, nil },
		updateMessageFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		likeFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isLikedByFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestThoughtService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewThoughtService(noopThoughtRepo())
	ctx := context.Background()
	author := &models.User{ID: 1, Username: "ada"}

	tests := []struct {
		name    string
		message string
	}{
		{name: "empty message", message: ""},
		{name: "whitespace only", message: "    "},
		{name: "too short", message: "hiya"},
		{name: "too long", message: strings.Repeat("x", 141)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Create(ctx, CreateThoughtInput{User: author, Message: tc.message})
			assertValidationError(t, err)
		})
	}
}

func TestThoughtService_Create_Defaults(t *testing.T) {
	t.Parallel()

	var created *models.Thought
	repo := noopThoughtRepo()
	repo.createFn = func(_ context.Context, thought *models.Thought) error {
		thought.ID = 7
		created = thought
		return nil
	}
	svc := NewThoughtService(repo)

	author := &models.User{ID: 4, Username: "ada"}
	thought, err := svc.Create(context.Background(), CreateThoughtInput{
		User:    author,
		Message: "hello world",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, uint(7), thought.ID)
	assert.Equal(t, "hello world", thought.Message)
	assert.Equal(t, 0, thought.Hearts)
	assert.Equal(t, "ada", thought.Username)
	require.NotNil(t, thought.UserID)
	assert.Equal(t, uint(4), *thought.UserID)
	assert.NotNil(t, thought.LikedBy)
	assert.Empty(t, thought.LikedBy)
}

func TestThoughtService_Create_BoundaryLengths(t *testing.T) {
	t.Parallel()

	svc := NewThoughtService(noopThoughtRepo())
	author := &models.User{ID: 1, Username: "ada"}

	_, err := svc.Create(context.Background(), CreateThoughtInput{
		User: author, Message: strings.Repeat("a", 5),
	})
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateThoughtInput{
		User: author, Message: strings.Repeat("a", 140),
	})
	assert.NoError(t, err)
}

func TestThoughtService_ListRecent_Empty(t *testing.T) {
	t.Parallel()

	repo := noopThoughtRepo()
	repo.listRecentFn = func(_ context.Context, _ int) ([]*models.Thought, error) {
		return []*models.Thought{}, nil
	}
	svc := NewThoughtService(repo)

	_, err := svc.ListRecent(context.Background())
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestThoughtService_ListRecent_CapsAtTwenty(t *testing.T) {
	t.Parallel()

	var requested int
	repo := noopThoughtRepo()
	repo.listRecentFn = func(_ context.Context, limit int) ([]*models.Thought, error) {
		requested = limit
		return []*models.Thought{{ID: 1}}, nil
	}
	svc := NewThoughtService(repo)

	thoughts, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	assert.Len(t, thoughts, 1)
	assert.Equal(t, 20, requested)
}

func TestThoughtService_Random(t *testing.T) {
	t.Parallel()

	t.Run("empty board", func(t *testing.T) {
		t.Parallel()
		svc := NewThoughtService(noopThoughtRepo())
		_, err := svc.Random(context.Background())
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("offset stays within count", func(t *testing.T) {
		t.Parallel()
		var gotOffset int
		repo := noopThoughtRepo()
		repo.countFn = func(_ context.Context) (int64, error) { return 3, nil }
		repo.getByOffsetFn = func(_ context.Context, offset int) (*models.Thought, error) {
			gotOffset = offset
			return &models.Thought{ID: uint(offset + 1)}, nil
		}
		svc := NewThoughtService(repo)
		svc.randInt = func(n int) int {
			assert.Equal(t, 3, n)
			return 2
		}

		thought, err := svc.Random(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, gotOffset)
		assert.Equal(t, uint(3), thought.ID)
	})
}

func TestThoughtService_UpdateMessage_Ownership(t *testing.T) {
	t.Parallel()

	owner := uint(5)

	t.Run("owner can update", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, UserID: &owner, Message: "original one"}, nil
		}
		var gotID uint
		var gotMessage string
		repo.updateMessageFn = func(_ context.Context, id uint, message string) error {
			gotID = id
			gotMessage = message
			return nil
		}
		svc := NewThoughtService(repo)
		thought, err := svc.UpdateMessage(context.Background(), UpdateThoughtInput{
			UserID: 5, ThoughtID: 1, Message: "updated text",
		})
		require.NoError(t, err)
		assert.Equal(t, "updated text", thought.Message)
		assert.Equal(t, uint(1), gotID)
		assert.Equal(t, "updated text", gotMessage)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, UserID: &owner}, nil
		}
		svc := NewThoughtService(repo)
		_, err := svc.UpdateMessage(context.Background(), UpdateThoughtInput{
			UserID: 6, ThoughtID: 1, Message: "updated text",
		})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("anyone can update an anonymous thought", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, UserID: nil, Message: "original one"}, nil
		}
		svc := NewThoughtService(repo)
		_, err := svc.UpdateMessage(context.Background(), UpdateThoughtInput{
			UserID: 6, ThoughtID: 1, Message: "updated text",
		})
		assert.NoError(t, err)
	})

	t.Run("new message is validated", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, UserID: &owner, Message: "original one"}, nil
		}
		svc := NewThoughtService(repo)
		_, err := svc.UpdateMessage(context.Background(), UpdateThoughtInput{
			UserID: 5, ThoughtID: 1, Message: "hi",
		})
		assertValidationError(t, err)
	})
}

func TestThoughtService_Delete_Ownership(t *testing.T) {
	t.Parallel()

	owner := uint(5)

	t.Run("owner gets the removed record back", func(t *testing.T) {
		t.Parallel()
		deleted := false
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, UserID: &owner, Message: "so long folks"}, nil
		}
		repo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewThoughtService(repo)
		thought, err := svc.Delete(context.Background(), DeleteThoughtInput{UserID: 5, ThoughtID: 1})
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, "so long folks", thought.Message)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, UserID: &owner}, nil
		}
		svc := NewThoughtService(repo)
		_, err := svc.Delete(context.Background(), DeleteThoughtInput{UserID: 6, ThoughtID: 1})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})
}

func TestThoughtService_Like(t *testing.T) {
	t.Parallel()

	t.Run("missing thought", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Thought, error) {
			return nil, models.NewNotFoundError("Thought", id)
		}
		svc := NewThoughtService(repo)
		_, err := svc.Like(context.Background(), 1, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("returns the refreshed thought", func(t *testing.T) {
		t.Parallel()
		hearts := 0
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, Hearts: hearts}, nil
		}
		repo.likeFn = func(_ context.Context, _, _ uint) (bool, error) {
			hearts++
			return true, nil
		}
		svc := NewThoughtService(repo)

		thought, err := svc.Like(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, thought.Hearts)
	})

	t.Run("repeat like skips the write", func(t *testing.T) {
		t.Parallel()
		repo := noopThoughtRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Thought, error) {
			return &models.Thought{ID: 1, Hearts: 1, LikedBy: []uint{1}}, nil
		}
		repo.isLikedByFn = func(_ context.Context, _, _ uint) (bool, error) {
			return true, nil
		}
		repo.likeFn = func(_ context.Context, _, _ uint) (bool, error) {
			t.Fatal("like write should not run for an existing like")
			return false, nil
		}
		svc := NewThoughtService(repo)

		thought, err := svc.Like(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, thought.Hearts)
	})
}

func TestThoughtService_ListLikedBy_EmptyIsFine(t *testing.T) {
	t.Parallel()

	repo := noopThoughtRepo()
	repo.listLikedByFn = func(_ context.Context, _ uint) ([]*models.Thought, error) {
		return []*models.Thought{}, nil
	}
	svc := NewThoughtService(repo)

	thoughts, err := svc.ListLikedBy(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, thoughts)
}
