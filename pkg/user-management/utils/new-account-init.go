package utils

import (
	"time"

	"github.com/0himanshu3/CiviK-Link/pkg/user-management/types"
)

// InitNewAccount assembles an unverified account document for registration.
// The verification code is part of the initial document, so a registration
// attempt is always created with its pending verification state.
func InitNewAccount(
	name string,
	email string,
	passwordHash string,
	role string,
	location string,
	interests []string,
	verificationCode int,
	codeValidFor time.Duration,
) types.Account {
	now := time.Now()

	account := types.Account{
		Name:            name,
		Email:           email,
		Password:        passwordHash,
		Role:            role,
		Location:        location,
		AccountVerified: false,
		PendingVerification: &types.PendingVerification{
			Code:      verificationCode,
			ExpiresAt: now.Add(codeValidFor).Unix(),
		},
		Timestamps: types.Timestamps{
			CreatedAt: now.Unix(),
			UpdatedAt: now.Unix(),
		},
	}
	if role == types.ROLE_NGO {
		account.Interests = interests
	}
	return account
}
