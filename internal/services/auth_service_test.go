package services

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/constants"
)

func newKey(t *testing.T) (chain.AccountID, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var account chain.AccountID
	copy(account[:], pub)
	return account, priv
}

func TestAuthService_Login(t *testing.T) {
	svc := NewAuthService()
	account, priv := newKey(t)

	challenge, err := svc.IssueChallenge(account)
	require.NoError(t, err)
	require.Len(t, challenge.Nonce, constants.ChallengeNonceSize)

	got, err := svc.Login(LoginInput{
		Challenge: challenge,
		Account:   account,
		Signature: ed25519.Sign(priv, challenge.Nonce),
	})
	require.NoError(t, err)
	require.Equal(t, account, got)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := NewAuthService()
	account, priv := newKey(t)
	other, otherPriv := newKey(t)

	challenge, err := svc.IssueChallenge(account)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input LoginInput
		want  error
	}{
		{
			name:  "no challenge",
			input: LoginInput{Account: account, Signature: ed25519.Sign(priv, []byte("x"))},
			want:  ErrNoPendingChallenge,
		},
		{
			name:  "challenge for another account",
			input: LoginInput{Challenge: challenge, Account: other, Signature: ed25519.Sign(otherPriv, challenge.Nonce)},
			want:  ErrChallengeMismatch,
		},
		{
			name:  "signed by another key",
			input: LoginInput{Challenge: challenge, Account: account, Signature: ed25519.Sign(otherPriv, challenge.Nonce)},
			want:  ErrInvalidSignature,
		},
		{
			name:  "signature over other bytes",
			input: LoginInput{Challenge: challenge, Account: account, Signature: ed25519.Sign(priv, []byte("not the nonce"))},
			want:  ErrInvalidSignature,
		},
		{
			name:  "truncated signature",
			input: LoginInput{Challenge: challenge, Account: account, Signature: []byte{1, 2, 3}},
			want:  ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.input)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
