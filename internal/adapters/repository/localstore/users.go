package localstore

import (
	"context"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
)

const usersFile = "users.json"

type UserStore struct {
	store *Store
}

func NewUserStore(s *Store) repository.UserRepository {
	return &UserStore{store: s}
}

func (r *UserStore) CreateUser(ctx context.Context, user models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var users []models.User
	if err := r.store.load(usersFile, &users); err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	users = append(users, user)
	return r.store.save(usersFile, users)
}

func (r *UserStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var users []models.User
	if err := r.store.load(usersFile, &users); err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrRecordNotFound
}

func (r *UserStore) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var users []models.User
	if err := r.store.load(usersFile, &users); err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, repository.ErrRecordNotFound
}
