package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// authService is the concrete implementation of AuthService.
// It handles signup, credential verification, and the JWT session
// lifecycle using a UserRepository for accounts and a SessionRepository for
// the set of active tokens of every user.
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	validator         validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Zero issues tokens without an expiry claim.
	tokenDuration time.Duration

	// sessionHashKey keys the digest under which tokens are stored.
	sessionHashKey string

	passwordHashCost int

	// dummyPasswordHash is compared against for unknown emails so that they
	// cost the same bcrypt work as a wrong password.
	dummyPasswordHash string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction. It fails when no dummy hash can be built at the configured
// bcrypt cost.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, cfg config.App, logger *logger.Logger) (AuthService, error) {
	dummy, err := utils.HashPassword(uuid.NewString(), cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error building dummy password hash: %w", err)
	}

	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		validator:         validators.NewUserValidator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		sessionHashKey:    cfg.SessionHashKey,
		passwordHashCost:  cfg.PasswordHashCost,
		dummyPasswordHash: dummy,
		logger:            logger,
	}, nil
}

// Signup normalizes and validates req, stores the new user with a bcrypt
// hash of the password and opens the first session.
//
// Returns:
//   - ErrValidation wrapping the validators error for malformed input.
//   - ErrEmailAlreadyExists if the email is taken.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	validators.NormalizeSignupRequest(&req)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("signup payload rejected")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	passwordHash, err := utils.HashPassword(req.Password, a.passwordHashCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, models.Token{}, err
	}

	user := models.User{
		ID:           utils.NewID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if req.Age != nil {
		user.Age = *req.Age
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, models.Token{}, ErrEmailAlreadyExists
		}
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.openSession(ctx, created.ID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("user_id", created.ID.String()).Msg("user signed up")
	return created, token, nil
}

// Login verifies credentials and opens a new session.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials
// after the same amount of bcrypt work.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	validators.NormalizeCredentials(&credentials)

	user, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = utils.ComparePassword(a.dummyPasswordHash, credentials.Password)
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = utils.ComparePassword(user.PasswordHash, credentials.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			log.Debug().Str("user_id", user.ID.String()).Msg("wrong password")
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("user_id", user.ID.String()).Msg("error comparing password")
		return models.User{}, models.Token{}, err
	}

	token, err := a.openSession(ctx, user.ID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// Authenticate walks a bearer token through signature, user and session
// checks. Every rejection is reported as ErrAuthenticationFailed; only a
// storage failure is reported as something else.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.Identity{}, ErrAuthenticationFailed
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug().Str("user_id", token.UserID.String()).Msg("token of a missing user")
			return models.Identity{}, ErrAuthenticationFailed
		}
		return models.Identity{}, fmt.Errorf("error resolving token subject: %w", err)
	}

	active, err := a.sessionRepository.ContainsToken(ctx, user.ID, a.sessionDigest(tokenString))
	if err != nil {
		return models.Identity{}, fmt.Errorf("error checking session: %w", err)
	}
	if !active {
		log.Debug().Str("user_id", user.ID.String()).Msg("revoked token")
		return models.Identity{}, ErrAuthenticationFailed
	}

	return models.Identity{User: user, Token: tokenString}, nil
}

func (a *authService) Logout(ctx context.Context, identity models.Identity) error {
	if err := a.sessionRepository.RemoveToken(ctx, identity.User.ID, a.sessionDigest(identity.Token)); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", identity.User.ID.String()).Msg("error revoking session")
		return fmt.Errorf("error revoking session: %w", err)
	}

	return nil
}

func (a *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := a.sessionRepository.ClearTokens(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID.String()).Msg("error revoking sessions")
		return fmt.Errorf("error revoking sessions: %w", err)
	}

	return nil
}

func (a *authService) PruneExpiredSessions(ctx context.Context) (int64, error) {
	if a.tokenDuration == 0 {
		return 0, nil
	}

	pruned, err := a.sessionRepository.PruneTokens(ctx, time.Now().Add(-a.tokenDuration))
	if err != nil {
		return 0, fmt.Errorf("error pruning sessions: %w", err)
	}

	return pruned, nil
}

// openSession issues a token for userID and records its digest. The token
// is returned only once the session is stored.
func (a *authService) openSession(ctx context.Context, userID uuid.UUID) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = a.sessionRepository.AddToken(ctx, userID, a.sessionDigest(token.SignedString)); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID.String()).Msg("error storing session")
		return models.Token{}, fmt.Errorf("error storing session: %w", err)
	}

	return token, nil
}

func (a *authService) sessionDigest(token string) string {
	return utils.HashString(token, a.sessionHashKey)
}
