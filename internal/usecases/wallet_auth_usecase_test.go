package usecases_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/usecases"
	"memeforge.backend/pkg/jwt"
)

type testWallet struct {
	address string
	priv    ed25519.PrivateKey
}

func newTestWallet(t *testing.T) testWallet {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return testWallet{
		address: solana.PublicKeyFromBytes(pub).String(),
		priv:    priv,
	}
}

func (w testWallet) sign(message string) string {
	sig := ed25519.Sign(w.priv, []byte(message))
	return solana.SignatureFromBytes(sig).String()
}

func newWalletAuthForTest(userRepo *MockUserRepository) *usecases.WalletAuthUseCase {
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	return usecases.NewWalletAuthUseCase(userRepo, jwtSvc)
}

func TestAuthenticate_NewUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newWalletAuthForTest(userRepo)
	ctx := context.Background()

	wallet := newTestWallet(t)
	message := "Sign in to MemeForge: 1756700000"

	userRepo.On("FindByWalletAddress", ctx, wallet.address).Return(nil, domainerrors.ErrUserNotFound).Once()
	userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil).Once()

	result, err := uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: wallet.address,
		Signature:     wallet.sign(message),
		Message:       message,
	})
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, wallet.address, result.User.WalletAddress)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthenticate_ExistingUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newWalletAuthForTest(userRepo)
	ctx := context.Background()

	wallet := newTestWallet(t)
	message := "Sign in to MemeForge: 1756700000"
	existing := &entities.User{ID: uuid.New(), WalletAddress: wallet.address}

	userRepo.On("FindByWalletAddress", ctx, wallet.address).Return(existing, nil).Once()

	result, err := uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: wallet.address,
		Signature:     wallet.sign(message),
		Message:       message,
	})
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, result.User.ID)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate_WrongSigner(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newWalletAuthForTest(userRepo)
	ctx := context.Background()

	wallet := newTestWallet(t)
	imposter := newTestWallet(t)
	message := "Sign in to MemeForge: 1756700000"

	// No user lookup or write happens on a bad signature.
	_, err := uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: wallet.address,
		Signature:     imposter.sign(message),
		Message:       message,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
	userRepo.AssertNotCalled(t, "FindByWalletAddress", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate_TamperedMessage(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newWalletAuthForTest(userRepo)
	ctx := context.Background()

	wallet := newTestWallet(t)

	_, err := uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: wallet.address,
		Signature:     wallet.sign("Sign in to MemeForge: 1756700000"),
		Message:       "Sign in to MemeForge: 1756700001",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
}

func TestAuthenticate_MessageWithoutMarker(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newWalletAuthForTest(userRepo)
	ctx := context.Background()

	wallet := newTestWallet(t)
	message := "Please approve this transfer"

	_, err := uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: wallet.address,
		Signature:     wallet.sign(message),
		Message:       message,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAuthMessage)
	userRepo.AssertNotCalled(t, "FindByWalletAddress", mock.Anything, mock.Anything)
}

func TestAuthenticate_BadInputs(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newWalletAuthForTest(userRepo)
	ctx := context.Background()

	wallet := newTestWallet(t)

	_, err := uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: "not-a-wallet",
		Signature:     wallet.sign("msg"),
		Message:       "msg",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidWallet)

	_, err = uc.Authenticate(ctx, &entities.WalletAuthInput{
		WalletAddress: wallet.address,
		Signature:     "garbage!!",
		Message:       "msg",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
}
