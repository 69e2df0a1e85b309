package services

import (
	"crypto/ed25519"
	"crypto/subtle"
	"errors"

	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/constants"
	"github.com/yukikurage/organization-registry/internal/utils"
)

var (
	ErrNoPendingChallenge    = errors.New("no pending login challenge")
	ErrChallengeMismatch     = errors.New("challenge was issued to a different account")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrChallengeGenerateFail = errors.New("failed to generate login challenge")
)

// AuthService proves control of an account key. The account id is the
// ed25519 public key; a login signs a random nonce issued to that account.
type AuthService struct{}

// NewAuthService creates a new AuthService.
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Challenge is a nonce issued to one account.
type Challenge struct {
	Account chain.AccountID
	Nonce   []byte
}

// IssueChallenge creates a fresh challenge for account.
func (s *AuthService) IssueChallenge(account chain.AccountID) (*Challenge, error) {
	nonce, err := utils.GenerateNonce(constants.ChallengeNonceSize)
	if err != nil {
		return nil, ErrChallengeGenerateFail
	}
	return &Challenge{Account: account, Nonce: nonce}, nil
}

// LoginInput holds a signed challenge.
type LoginInput struct {
	Challenge *Challenge
	Account   chain.AccountID
	Signature []byte
}

// Login verifies the signature over the pending challenge and returns the
// authenticated account.
func (s *AuthService) Login(input LoginInput) (chain.AccountID, error) {
	if input.Challenge == nil || len(input.Challenge.Nonce) == 0 {
		return chain.AccountID{}, ErrNoPendingChallenge
	}
	if subtle.ConstantTimeCompare(input.Challenge.Account[:], input.Account[:]) != 1 {
		return chain.AccountID{}, ErrChallengeMismatch
	}
	if len(input.Signature) != ed25519.SignatureSize {
		return chain.AccountID{}, ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(input.Account[:]), input.Challenge.Nonce, input.Signature) {
		return chain.AccountID{}, ErrInvalidSignature
	}
	return input.Account, nil
}
