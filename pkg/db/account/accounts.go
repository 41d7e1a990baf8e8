package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/0himanshu3/CiviK-Link/pkg/user-management/types"
)

func (dbService *AccountDBService) CreateAccount(account userTypes.Account) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionAccounts().InsertOne(ctx, account)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (dbService *AccountDBService) GetAccountByID(accountID string) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return userTypes.Account{}, err
	}

	var account userTypes.Account
	err = dbService.collectionAccounts().FindOne(ctx, bson.M{"_id": _id}).Decode(&account)
	return account, err
}

// GetVerifiedAccountByEmail returns the verified account for the email
// address, including the password hash.
func (dbService *AccountDBService) GetVerifiedAccountByEmail(email string) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"email": email, "accountVerified": true}
	var account userTypes.Account
	err := dbService.collectionAccounts().FindOne(ctx, filter).Decode(&account)
	return account, err
}

func (dbService *AccountDBService) HasVerifiedAccountWithEmail(email string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"email": email, "accountVerified": true}
	count, err := dbService.collectionAccounts().CountDocuments(ctx, filter)
	return count > 0, err
}

// GetLatestUnverifiedAccountByEmail selects the most recently created
// unverified registration attempt for the email address. Multiple pending
// attempts may coexist, only verified accounts are unique per email.
func (dbService *AccountDBService) GetLatestUnverifiedAccountByEmail(email string) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"email": email, "accountVerified": false}
	sort := bson.D{
		{Key: "timestamps.createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}

	var account userTypes.Account
	err := dbService.collectionAccounts().FindOne(ctx, filter, options.FindOne().SetSort(sort)).Decode(&account)
	return account, err
}

// ConfirmAccount flips an unverified account to verified in one conditional
// update. The filter matches on the submitted code and an unexpired
// verification window, so at most one logical transition can happen even
// with concurrent requests. Returns mongo.ErrNoDocuments when the code is
// wrong, expired, or the account was already confirmed.
func (dbService *AccountDBService) ConfirmAccount(accountID string, code int, now time.Time) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return userTypes.Account{}, err
	}

	filter := bson.M{
		"_id":                           _id,
		"accountVerified":               false,
		"pendingVerification.code":      code,
		"pendingVerification.expiresAt": bson.M{"$gte": now.Unix()},
	}
	update := bson.M{
		"$set": bson.M{
			"accountVerified":      true,
			"timestamps.updatedAt": now.Unix(),
		},
		"$unset": bson.M{"pendingVerification": ""},
	}

	var account userTypes.Account
	err = dbService.collectionAccounts().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&account)
	return account, err
}

// SetResetToken stores the reset token hash and expiry, only these fields
// are touched.
func (dbService *AccountDBService) SetResetToken(accountID string, tokenHash string, expiresAt int64) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"pendingReset": userTypes.PendingReset{
				TokenHash: tokenHash,
				ExpiresAt: expiresAt,
			},
			"timestamps.updatedAt": time.Now().Unix(),
		},
	}
	_, err = dbService.collectionAccounts().UpdateOne(ctx, bson.M{"_id": _id}, update)
	return err
}

// ClearResetToken removes a pending reset as a unit, used for the rollback
// when the reset email cannot be dispatched.
func (dbService *AccountDBService) ClearResetToken(accountID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$unset": bson.M{"pendingReset": ""},
		"$set":   bson.M{"timestamps.updatedAt": time.Now().Unix()},
	}
	_, err = dbService.collectionAccounts().UpdateOne(ctx, bson.M{"_id": _id}, update)
	return err
}

func (dbService *AccountDBService) GetAccountByResetToken(tokenHash string, now time.Time) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"pendingReset.tokenHash": tokenHash,
		"pendingReset.expiresAt": bson.M{"$gt": now.Unix()},
	}
	var account userTypes.Account
	err := dbService.collectionAccounts().FindOne(ctx, filter).Decode(&account)
	return account, err
}

// ConsumeResetToken writes the new password hash and clears the pending
// reset in one conditional update keyed on the token hash. Two racing
// requests with the same token cannot both succeed, the second one gets
// mongo.ErrNoDocuments.
func (dbService *AccountDBService) ConsumeResetToken(tokenHash string, newPasswordHash string, now time.Time) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"pendingReset.tokenHash": tokenHash,
		"pendingReset.expiresAt": bson.M{"$gt": now.Unix()},
	}
	update := bson.M{
		"$set": bson.M{
			"password":                      newPasswordHash,
			"timestamps.lastPasswordChange": now.Unix(),
			"timestamps.updatedAt":          now.Unix(),
		},
		"$unset": bson.M{"pendingReset": ""},
	}

	var account userTypes.Account
	err := dbService.collectionAccounts().FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&account)
	return account, err
}

func (dbService *AccountDBService) SaveFailedLoginAttempt(accountID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"failedLoginAttempts": time.Now().Unix()},
	}
	_, err = dbService.collectionAccounts().UpdateOne(ctx, bson.M{"_id": _id}, update)
	return err
}

func (dbService *AccountDBService) UpdateAccount(accountID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return err
	}

	_, err = dbService.collectionAccounts().UpdateOne(ctx, bson.M{"_id": _id}, update)
	return err
}

func (dbService *AccountDBService) CountRecentlyCreatedAccounts(window int64) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"timestamps.createdAt": bson.M{"$gt": time.Now().Unix() - window}}
	return dbService.collectionAccounts().CountDocuments(ctx, filter)
}

// GetNGOs lists verified NGO accounts with the reduced public projection
// for the donation page.
func (dbService *AccountDBService) GetNGOs() ([]userTypes.NGOListItem, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"role": userTypes.ROLE_NGO, "accountVerified": true}
	opts := options.Find().
		SetProjection(bson.M{
			"name":           1,
			"email":          1,
			"location":       1,
			"interests":      1,
			"totalDonations": 1,
		}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := dbService.collectionAccounts().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ngos := []userTypes.NGOListItem{}
	if err := cursor.All(ctx, &ngos); err != nil {
		return nil, err
	}
	return ngos, nil
}
