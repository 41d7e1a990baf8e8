package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// account roles
const (
	ROLE_ADMIN = "Admin"
	ROLE_NGO   = "NGO"
	ROLE_USER  = "User"
)

// ADMIN_SUBJECT is used as token subject for the admin bypass login, there
// is no account document behind it.
const ADMIN_SUBJECT = "admin"

// IssueTags is the fixed set of cause areas an NGO can subscribe to.
var IssueTags = []string{
	"Road",
	"Water",
	"Electricity",
	"Education",
	"Health",
	"Sanitation",
}

type Account struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
	Location string             `bson:"location" json:"location"`

	// populated only for NGO accounts
	Interests []string `bson:"interests,omitempty" json:"interests,omitempty"`

	AccountVerified bool `bson:"accountVerified" json:"accountVerified"`

	// PendingVerification and PendingReset are each present or absent as a
	// unit, never partially set.
	PendingVerification *PendingVerification `bson:"pendingVerification,omitempty" json:"-"`
	PendingReset        *PendingReset        `bson:"pendingReset,omitempty" json:"-"`

	TotalDonations float64 `bson:"totalDonations" json:"totalDonations"`

	FailedLoginAttempts []int64 `bson:"failedLoginAttempts,omitempty" json:"-"`

	Timestamps Timestamps `bson:"timestamps" json:"timestamps"`
}

// PendingVerification holds the OTP state of a not yet verified account.
type PendingVerification struct {
	Code      int   `bson:"code" json:"code"`
	ExpiresAt int64 `bson:"expiresAt" json:"expiresAt"`
}

// PendingReset holds the hash of an issued password reset secret. The
// unhashed secret only ever travels in the reset email.
type PendingReset struct {
	TokenHash string `bson:"tokenHash" json:"tokenHash"`
	ExpiresAt int64  `bson:"expiresAt" json:"expiresAt"`
}

type Timestamps struct {
	CreatedAt          int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt          int64 `bson:"updatedAt" json:"updatedAt"`
	LastLogin          int64 `bson:"lastLogin" json:"lastLogin"`
	LastPasswordChange int64 `bson:"lastPasswordChange" json:"lastPasswordChange"`
}

// AccountInfo is the public projection of an account that is safe to return
// in API responses. It never contains the password hash or any pending
// verification or reset secrets.
type AccountInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Location  string   `json:"location,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

func (a Account) Projection() AccountInfo {
	info := AccountInfo{
		ID:       a.ID.Hex(),
		Name:     a.Name,
		Email:    a.Email,
		Role:     a.Role,
		Location: a.Location,
	}
	if a.Role == ROLE_NGO {
		info.Interests = a.Interests
	}
	return info
}

// AdminAccountInfo returns the synthetic principal for the admin bypass
// login path.
func AdminAccountInfo(email string) AccountInfo {
	return AccountInfo{
		ID:    ADMIN_SUBJECT,
		Name:  "Admin",
		Email: email,
		Role:  ROLE_ADMIN,
	}
}

func IsValidRole(role string) bool {
	switch role {
	case ROLE_ADMIN, ROLE_NGO, ROLE_USER:
		return true
	}
	return false
}

// CheckInterests returns true if the list is a non-empty subset of the fixed
// issue tag enumeration.
func CheckInterests(interests []string) bool {
	if len(interests) == 0 {
		return false
	}
	for _, interest := range interests {
		found := false
		for _, tag := range IssueTags {
			if interest == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NGOListItem is the reduced projection used by the public NGO listing on
// the donation page.
type NGOListItem struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Location       string             `bson:"location" json:"location"`
	Interests      []string           `bson:"interests" json:"interests"`
	TotalDonations float64            `bson:"totalDonations" json:"totalDonations"`
}
