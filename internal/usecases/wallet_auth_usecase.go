package usecases

import (
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/domain/repositories"
	"memeforge.backend/pkg/jwt"
	"memeforge.backend/pkg/logger"
	"memeforge.backend/pkg/metrics"
)

// AuthMessageMarker must appear in every sign-in message. It stops
// wallets from being tricked into signing an unrelated payload that
// would then work as a login.
const AuthMessageMarker = "Sign in to MemeForge"

// WalletAuthUseCase handles wallet-signature authentication
type WalletAuthUseCase struct {
	userRepo repositories.UserRepository
	jwtSvc   *jwt.JWTService
	now      func() time.Time
}

// NewWalletAuthUseCase creates a new wallet auth use case
func NewWalletAuthUseCase(userRepo repositories.UserRepository, jwtSvc *jwt.JWTService) *WalletAuthUseCase {
	return &WalletAuthUseCase{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		now:      time.Now,
	}
}

// Authenticate verifies that the message was signed by the wallet's
// private key and returns a token pair for the matching user, creating
// the account on first sign-in. Nothing is written before the
// signature checks out.
func (uc *WalletAuthUseCase) Authenticate(ctx context.Context, input *entities.WalletAuthInput) (*entities.AuthResult, error) {
	log := logger.WithContext(ctx)

	pubKey, err := solana.PublicKeyFromBase58(input.WalletAddress)
	if err != nil {
		metrics.WalletAuthTotal.WithLabelValues("invalid_wallet").Inc()
		return nil, domainerrors.ErrInvalidWallet
	}

	sig, err := solana.SignatureFromBase58(input.Signature)
	if err != nil {
		metrics.WalletAuthTotal.WithLabelValues("invalid_signature").Inc()
		return nil, domainerrors.ErrInvalidSignature
	}

	if !strings.Contains(input.Message, AuthMessageMarker) {
		metrics.WalletAuthTotal.WithLabelValues("invalid_message").Inc()
		return nil, domainerrors.ErrInvalidAuthMessage
	}

	if !ed25519.Verify(ed25519.PublicKey(pubKey[:]), []byte(input.Message), sig[:]) {
		metrics.WalletAuthTotal.WithLabelValues("invalid_signature").Inc()
		return nil, domainerrors.ErrInvalidSignature
	}

	user, err := uc.userRepo.FindByWalletAddress(ctx, input.WalletAddress)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		user = &entities.User{
			ID:            uuid.New(),
			WalletAddress: input.WalletAddress,
			CreatedAt:     uc.now(),
			UpdatedAt:     uc.now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			log.Error("user create failed", zap.Error(err))
			return nil, err
		}
		log.Info("user created", zap.String("user_id", user.ID.String()))
	} else if err != nil {
		return nil, err
	}

	pair, err := uc.jwtSvc.GenerateTokenPair(user.ID, user.WalletAddress)
	if err != nil {
		log.Error("token generation failed", zap.Error(err))
		return nil, err
	}

	metrics.WalletAuthTotal.WithLabelValues("success").Inc()
	return &entities.AuthResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
