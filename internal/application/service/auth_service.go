package service

import (
	"context"
	"strings"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/utils"
)

// AuthService handles PIN login and the admin PIN gate.
type AuthService struct {
	cashierRepo repository.CashierRepository
	jwtManager  *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(cashierRepo repository.CashierRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		cashierRepo: cashierRepo,
		jwtManager:  jwtManager,
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	Cashier     *entity.Cashier `json:"cashier"`
	AccessToken string          `json:"access_token"`
	Session     entity.Session  `json:"-"`
}

// Login finds the cashier whose PIN matches and issues a session token.
func (s *AuthService) Login(ctx context.Context, pin string) (*LoginOutput, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, apperror.Validation("pin", "PIN is required")
	}

	cashiers, err := s.cashierRepo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	for i := range cashiers {
		c := &cashiers[i]
		if !utils.CheckPIN(pin, c.PINHash) {
			continue
		}
		token, tokenID, err := s.jwtManager.GenerateAccessToken(c.ID, c.Name, c.Role.String())
		if err != nil {
			return nil, err
		}
		logger.Info().Uint("cashier_id", c.ID).Str("cashier", c.Name).Msg("Cashier logged in")
		return &LoginOutput{
			Cashier:     c,
			AccessToken: token,
			Session: entity.Session{
				ID:          tokenID,
				CashierID:   c.ID,
				CashierName: c.Name,
				Role:        c.Role,
			},
		}, nil
	}

	logger.Warn().Msg("Login attempt with unknown PIN")
	return nil, apperror.ErrInvalidPIN
}

// SessionFromToken rebuilds the session carried by an access token.
func (s *AuthService) SessionFromToken(token string) (*entity.Session, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return &entity.Session{
		ID:          claims.ID,
		CashierID:   claims.CashierID,
		CashierName: claims.CashierName,
		Role:        enum.ParseCashierRole(claims.Role),
	}, nil
}

// VerifyAdminPIN succeeds when pin matches any admin account. Destructive
// operations call this before they run.
func (s *AuthService) VerifyAdminPIN(ctx context.Context, pin string) error {
	admins, err := s.cashierRepo.ListByRole(ctx, enum.RoleAdmin)
	if err != nil {
		return apperror.Persistence(err)
	}
	if len(admins) == 0 {
		return apperror.NewAuthorizationError("No admin accounts")
	}
	for _, admin := range admins {
		if utils.CheckPIN(pin, admin.PINHash) {
			return nil
		}
	}
	logger.Warn().Msg("Admin PIN verification failed")
	return apperror.NewAuthorizationError("Invalid admin PIN")
}
