package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	Get(ctx context.Context, id int64) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
}

type InviteRepository interface {
	Create(ctx context.Context, invite *model.Invite) (*model.Invite, error)
	GetByToken(ctx context.Context, token string) (*model.Invite, error)
	MarkUsed(ctx context.Context, id int64, usedAt time.Time) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// sessionClaims is the JWT payload. Role travels in the token so request
// handling needs no profile lookup; role changes take effect at next login.
type sessionClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService owns passwords, sessions, and the invitation flow.
type AuthService struct {
	profileRepo ProfileRepository
	inviteRepo  InviteRepository
	jwtSecret   []byte
	sessionTTL  time.Duration
	inviteTTL   time.Duration
	bcryptCost  int
	now         func() time.Time
}

func NewAuthService(profileRepo ProfileRepository, inviteRepo InviteRepository, jwtSecret string, sessionTTL, inviteTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		inviteRepo:  inviteRepo,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
		inviteTTL:   inviteTTL,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

// Login checks the password and mints a session token. Bad email and bad
// password return the same error so the endpoint leaks nothing.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperr.ErrPermission)
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperr.ErrPermission)
	}

	now := s.now()
	claims := sessionClaims{
		Role: profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", profile.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, profile, nil
}

// Verify parses a session token back into an Actor.
func (s *AuthService) Verify(tokenString string) (model.Actor, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return model.Actor{}, fmt.Errorf("%w: invalid session", apperr.ErrPermission)
	}
	if !claims.Role.Valid() {
		return model.Actor{}, fmt.Errorf("%w: invalid session role", apperr.ErrPermission)
	}
	var profileID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &profileID); err != nil || profileID <= 0 {
		return model.Actor{}, fmt.Errorf("%w: invalid session subject", apperr.ErrPermission)
	}
	return model.Actor{ProfileID: profileID, Role: claims.Role}, nil
}

// CreateInvite mints a single-use onboarding token. The caller hands it to
// the invitee out of band.
func (s *AuthService) CreateInvite(ctx context.Context, actor model.Actor, email string, role model.Role) (*model.Invite, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins create invites", apperr.ErrPermission)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
	}

	return s.inviteRepo.Create(ctx, &model.Invite{
		Token:     uuid.NewString(),
		Email:     email,
		Role:      role,
		ExpiresAt: s.now().Add(s.inviteTTL),
		CreatedBy: actor.ProfileID,
	})
}

// RedeemInvite turns a valid invite into a profile. Consuming the invite and
// creating the profile happen in one transaction, so a token can never mint
// two accounts.
func (s *AuthService) RedeemInvite(ctx context.Context, token, displayName, password string) (*model.Profile, error) {
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, fmt.Errorf("%w: display name is required", apperr.ErrValidation)
	}

	invite, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if invite.UsedAt != nil {
		return nil, fmt.Errorf("%w: invite already used", apperr.ErrValidation)
	}
	if now.After(invite.ExpiresAt) {
		return nil, fmt.Errorf("%w: invite expired", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var profile *model.Profile
	err = s.inviteRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.inviteRepo.MarkUsed(ctx, invite.ID, now); err != nil {
			return err
		}
		profile, err = s.profileRepo.Create(ctx, &model.Profile{
			Email:        invite.Email,
			DisplayName:  strings.TrimSpace(displayName),
			Role:         invite.Role,
			PasswordHash: string(hash),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
