package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"paper-swipe/models"
)

const collaborationPage = 50

var (
	ErrCollaborationNotFound = models.ErrCollaborationNotFound
	ErrCollaborationClosed   = errors.New("collaboration is not open for requests")
	ErrOwnCollaboration      = errors.New("cannot request your own collaboration")
	ErrAlreadyRequested      = errors.New("collaboration already requested")
)

// CollaborationStore ist der Persistenz-Port für Kollaborationen.
type CollaborationStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetPaper(ctx context.Context, id string) (*models.PaperWithLikes, error)
	CreateCollaboration(ctx context.Context, c *models.Collaboration) error
	GetCollaboration(ctx context.Context, id string) (*models.Collaboration, error)
	OpenCollaborations(ctx context.Context, limit int) ([]models.Collaboration, error)
	CreateCollaborationRequest(ctx context.Context, req *models.CollaborationRequest) error
}

// CollaborationService verwaltet Aufrufe zur Zusammenarbeit und Teilnahmeanfragen.
type CollaborationService struct {
	store  CollaborationStore
	logger *zap.Logger
}

// NewCollaborationService erstellt eine neue Instanz des CollaborationService.
func NewCollaborationService(store CollaborationStore, logger *zap.Logger) *CollaborationService {
	return &CollaborationService{store: store, logger: logger}
}

// Create legt eine offene Kollaboration an. paperID ist optional, muss aber existieren.
func (s *CollaborationService) Create(ctx context.Context, userID, title, description, paperID string) (*models.Collaboration, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	c := &models.Collaboration{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      models.CollaborationOpen,
	}
	if paperID = strings.TrimSpace(paperID); paperID != "" {
		if _, err := s.store.GetPaper(ctx, paperID); err != nil {
			return nil, err
		}
		c.PaperID = &paperID
	}
	if err := s.store.CreateCollaboration(ctx, c); err != nil {
		s.logger.Error("Failed to create collaboration", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Collaboration created", zap.String("collaboration_id", c.ID), zap.String("user_id", userID))
	return c, nil
}

// Open liefert die offenen Kollaborationen, neueste zuerst.
func (s *CollaborationService) Open(ctx context.Context) ([]models.Collaboration, error) {
	return s.store.OpenCollaborations(ctx, collaborationPage)
}

// Request stellt eine Teilnahmeanfrage mit Status "pending". Die Kollaboration muss offen
// sein und einem anderen Nutzer gehören; jeder Nutzer kann nur einmal anfragen.
func (s *CollaborationService) Request(ctx context.Context, userID, collaborationID, message string) (*models.CollaborationRequest, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.store.GetCollaboration(ctx, collaborationID)
	if err != nil {
		return nil, err
	}
	if c.Status != models.CollaborationOpen {
		return nil, ErrCollaborationClosed
	}
	if c.UserID == userID {
		return nil, ErrOwnCollaboration
	}

	req := &models.CollaborationRequest{
		CollaborationID: c.ID,
		UserID:          userID,
		Status:          models.RequestPending,
	}
	if message = strings.TrimSpace(message); message != "" {
		req.Message = &message
	}
	if err := s.store.CreateCollaborationRequest(ctx, req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRequested
		}
		s.logger.Error("Failed to create collaboration request", zap.String("collaboration_id", c.ID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Collaboration requested", zap.String("collaboration_id", c.ID), zap.String("user_id", userID))
	return req, nil
}
