// Package auth is the identity/session provider: it owns credentials and
// issues the tokens from which the rest of the system takes the current
// user's id and type on trust.
package auth

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/hostelmate/marketplace-api/internal/email"
	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/store"
	pkgauth "github.com/hostelmate/marketplace-api/pkg/auth"
	"github.com/hostelmate/marketplace-api/pkg/errors"
	"github.com/hostelmate/marketplace-api/pkg/logger"
	"github.com/hostelmate/marketplace-api/pkg/security"
)

const credentialsKey = "hostelmate:credentials"

type credential struct {
	UserID       string         `json:"userId"`
	UserType     model.UserType `json:"userType"`
	PasswordHash string         `json:"passwordHash"`
}

type RegisterInput struct {
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Name     string         `json:"name" binding:"required"`
	Type     model.UserType `json:"type" binding:"required,oneof=volunteer hostel"`
	Country  string         `json:"country,omitempty"`
}

type Service struct {
	kv     kvstore.Store
	stores *store.Factory
	hasher security.PasswordHasher
	tokens pkgauth.JWTService
	mailer email.Service
	logger *logger.Logger
}

func NewService(kv kvstore.Store, stores *store.Factory, hasher security.PasswordHasher, tokens pkgauth.JWTService, mailer email.Service, log *logger.Logger) *Service {
	return &Service{
		kv:     kv,
		stores: stores,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		logger: log,
	}
}

// Register creates the account's aggregate and credentials and returns a
// session token. The welcome email is best-effort.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.UserAggregate, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Name == "" {
		return nil, "", errors.NewValidation("email and name are required")
	}
	if in.Type != model.UserTypeVolunteer && in.Type != model.UserTypeHostel {
		return nil, "", errors.NewValidation("type must be volunteer or hostel")
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, "", err
	}
	if _, exists := creds[in.Email]; exists {
		return nil, "", errors.NewValidation("email is already registered")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", errors.NewValidation(err.Error())
	}

	aggregate := &model.UserAggregate{
		ID:            uuid.New().String(),
		Type:          in.Type,
		SavedItems:    []string{},
		Applications:  []model.Application{},
		Messages:      []model.Message{},
		Notifications: []model.Notification{},
	}
	switch in.Type {
	case model.UserTypeVolunteer:
		aggregate.Volunteer = &model.VolunteerProfile{Name: in.Name, Email: in.Email, Country: in.Country}
	case model.UserTypeHostel:
		aggregate.Hostel = &model.HostelProfile{Name: in.Name, Email: in.Email, Country: in.Country}
	}

	if err := s.stores.ForUser(aggregate.ID).Save(ctx, aggregate); err != nil {
		return nil, "", err
	}

	creds[in.Email] = credential{
		UserID:       aggregate.ID,
		UserType:     in.Type,
		PasswordHash: hash,
	}
	if err := s.saveCredentials(ctx, creds); err != nil {
		return nil, "", err
	}

	if err := s.mailer.SendWelcome(ctx, in.Email, in.Name); err != nil {
		s.logger.Warn("failed to send welcome email", "email", in.Email, "error", err.Error())
	}

	token, err := s.tokens.GenerateToken(aggregate.ID, aggregate.Type)
	if err != nil {
		return nil, "", errors.NewInternal(err)
	}

	s.logger.Info("account registered", "user_id", aggregate.ID, "type", string(in.Type))
	return aggregate, token, nil
}

// Login verifies credentials and returns a fresh session token together
// with the account's aggregate.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*model.UserAggregate, string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, "", err
	}

	cred, ok := creds[emailAddr]
	if !ok {
		return nil, "", errors.NewUnauthorized(nil)
	}
	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		return nil, "", errors.NewUnauthorized(nil)
	}

	aggregate, err := s.stores.ForUser(cred.UserID).Load(ctx)
	if err != nil {
		return nil, "", err
	}
	if aggregate == nil {
		return nil, "", errors.NewNotFound("account", nil)
	}

	token, err := s.tokens.GenerateToken(cred.UserID, cred.UserType)
	if err != nil {
		return nil, "", errors.NewInternal(err)
	}
	return aggregate, token, nil
}

// Credentials are primary data: storage failures propagate, unlike the
// fail-open aggregate cache.
func (s *Service) loadCredentials(ctx context.Context) (map[string]credential, error) {
	raw, ok, err := s.kv.Get(ctx, credentialsKey)
	if err != nil {
		return nil, errors.NewStorage(err)
	}
	if !ok {
		return map[string]credential{}, nil
	}

	creds := map[string]credential{}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, errors.NewStorage(err)
	}
	return creds, nil
}

func (s *Service) saveCredentials(ctx context.Context, creds map[string]credential) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return errors.NewStorage(err)
	}
	if err := s.kv.Set(ctx, credentialsKey, string(payload)); err != nil {
		return errors.NewStorage(err)
	}
	return nil
}
