package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paper-swipe/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
)

var validate = validator.New()

// UserStore ist der Persistenz-Port der Nutzerverwaltung.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UpdateInterests(ctx context.Context, id string, interests []string) (*models.User, error)
}

// UserService legt Nutzer an und pflegt ihre Interessen.
type UserService struct {
	store  UserStore
	logger *zap.Logger
}

// NewUserService erstellt eine neue Instanz des UserService.
func NewUserService(store UserStore, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Create legt einen Nutzer an. Die E-Mail ist Pflicht und eindeutig.
func (s *UserService) Create(ctx context.Context, name, email string, interests []string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	u := &models.User{
		Name:      strings.TrimSpace(name),
		Email:     email,
		Interests: models.StringList(cleanInterests(interests)),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}
	s.logger.Info("User created", zap.String("user_id", u.ID))
	return u, nil
}

// SetInterests ersetzt die Interessen eines Nutzers.
func (s *UserService) SetInterests(ctx context.Context, userID string, interests []string) (*models.User, error) {
	return s.store.UpdateInterests(ctx, userID, cleanInterests(interests))
}

// cleanInterests entfernt Leerraum, leere Einträge und Duplikate (ohne Groß-/Kleinschreibung).
func cleanInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, i := range in {
		i = strings.TrimSpace(i)
		if i == "" {
			continue
		}
		key := strings.ToLower(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, i)
	}
	return out
}
