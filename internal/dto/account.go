package dto

import "github.com/yukikurage/organization-registry/internal/chain"

// AccountDTO represents the signed-in account
type AccountDTO struct {
	AccountID chain.AccountID `json:"account_id"`
}

// ChallengeDTO carries the nonce an account must sign to log in
type ChallengeDTO struct {
	AccountID chain.AccountID `json:"account_id"`
	Nonce     string          `json:"nonce"`
}
