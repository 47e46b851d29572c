package storage

import (
	"database/sql"
	"testing"
	"time"

	"claimboard/internal/auth"
	"claimboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ClaimTestSuite provides a test suite for claim operations
type ClaimTestSuite struct {
	suite.Suite
	db    *DB
	owner *models.User
}

// SetupTest runs before each test
func (suite *ClaimTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db

	owner, err := db.CreateUser(&models.User{
		Username: "thandi",
		Name:     "Thandi",
		Surname:  "Nkosi",
		Email:    "thandi@example.com",
	}, "not-a-real-hash")
	require.NoError(suite.T(), err, "failed to create claim owner")
	suite.owner = owner
}

// TearDownTest runs after each test
func (suite *ClaimTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ClaimTestSuite) createClaim(amount float64, category models.Category, status models.Status) *models.Claim {
	claim, err := suite.db.CreateClaim(&models.Claim{
		Amount:   amount,
		Category: category,
		Status:   status,
		OwnerID:  suite.owner.ID,
	})
	require.NoError(suite.T(), err, "failed to create claim")
	return claim
}

func (suite *ClaimTestSuite) TestCreateClaimDefaults() {
	claim, err := suite.db.CreateClaim(&models.Claim{Amount: 500, OwnerID: suite.owner.ID})
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), models.StatusPending, claim.Status, "new claims default to pending")
	assert.Equal(suite.T(), models.CategoryOther, claim.Category)
	assert.NotZero(suite.T(), claim.ID)
	require.NotNil(suite.T(), claim.Owner)
	assert.Equal(suite.T(), "thandi", claim.Owner.Username)
}

func (suite *ClaimTestSuite) TestCreateClaimRejectsUnknownStatus() {
	_, err := suite.db.CreateClaim(&models.Claim{
		Amount:  100,
		Status:  models.Status("archived"),
		OwnerID: suite.owner.ID,
	})
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "invalid status")
}

func (suite *ClaimTestSuite) TestGetClaim() {
	created := suite.createClaim(250.75, models.CategoryTravel, models.StatusPending)

	claim, err := suite.db.GetClaim(created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 250.75, claim.Amount)
	assert.Equal(suite.T(), models.CategoryTravel, claim.Category)
	require.NotNil(suite.T(), claim.Owner)
	assert.Equal(suite.T(), "Thandi Nkosi", claim.Owner.FullName())
}

func (suite *ClaimTestSuite) TestListClaimsOrder() {
	suite.createClaim(10, models.CategoryMeals, models.StatusPending)
	suite.createClaim(20, models.CategoryTransport, models.StatusApproved)
	suite.createClaim(30, models.CategoryOther, models.StatusPaid)

	list, err := suite.db.ListClaims(0, 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 3)

	// Newest first; equal timestamps fall back to descending id
	assert.Equal(suite.T(), 30.0, list[0].Amount)
	assert.Equal(suite.T(), 10.0, list[2].Amount)
}

func (suite *ClaimTestSuite) TestListClaimsPaged() {
	for i := 0; i < 5; i++ {
		suite.createClaim(float64(i+1), models.CategoryMeals, models.StatusPending)
	}

	page, err := suite.db.ListClaims(2, 0)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), page, 2)

	rest, err := suite.db.ListClaims(10, 2)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), rest, 3)
}

func (suite *ClaimTestSuite) TestUpdateClaimStatus() {
	claim := suite.createClaim(500, models.CategoryTravel, models.StatusPending)

	err := suite.db.UpdateClaimStatus(claim.ID, models.StatusApproved)
	require.NoError(suite.T(), err)

	updated, err := suite.db.GetClaim(claim.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusApproved, updated.Status)
	assert.False(suite.T(), updated.UpdatedAt.Before(claim.UpdatedAt), "updated_at should move forward")
}

func (suite *ClaimTestSuite) TestUpdateClaimStatusPermissiveMatrix() {
	// Every status may follow every other; paid back to pending included
	claim := suite.createClaim(500, models.CategoryTravel, models.StatusPaid)

	err := suite.db.UpdateClaimStatus(claim.ID, models.StatusPending)
	require.NoError(suite.T(), err)

	updated, err := suite.db.GetClaim(claim.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusPending, updated.Status)
}

func (suite *ClaimTestSuite) TestUpdateClaimStatusInvalid() {
	claim := suite.createClaim(500, models.CategoryTravel, models.StatusPending)

	err := suite.db.UpdateClaimStatus(claim.ID, models.Status("archived"))
	require.Error(suite.T(), err)

	unchanged, err := suite.db.GetClaim(claim.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusPending, unchanged.Status)
}

func (suite *ClaimTestSuite) TestUpdateClaimStatusMissingClaim() {
	err := suite.db.UpdateClaimStatus(9999, models.StatusApproved)
	assert.ErrorIs(suite.T(), err, sql.ErrNoRows)
}

func (suite *ClaimTestSuite) TestDeleteClaim() {
	claim := suite.createClaim(75, models.CategoryEntertainment, models.StatusCancelled)

	err := suite.db.DeleteClaim(claim.ID)
	require.NoError(suite.T(), err)

	_, err = suite.db.GetClaim(claim.ID)
	assert.Error(suite.T(), err, "expected error after deleting claim")

	err = suite.db.DeleteClaim(claim.ID)
	assert.ErrorIs(suite.T(), err, sql.ErrNoRows, "second delete should report no rows")
}

func (suite *ClaimTestSuite) TestClaimCount() {
	suite.createClaim(10, models.CategoryMeals, models.StatusPending)
	suite.createClaim(20, models.CategoryMeals, models.StatusDeclined)

	count, err := suite.db.ClaimCount()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
}

// SessionTestSuite provides a test suite for session operations
type SessionTestSuite struct {
	suite.Suite
	db   *DB
	user *models.User
}

// SetupTest runs before each test
func (suite *SessionTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db

	// Create a test user
	password, err := auth.HashPassword("testpass")
	require.NoError(suite.T(), err, "failed to hash password")

	user, err := suite.db.CreateUser(&models.User{Username: "testuser", Name: "Test"}, password)
	require.NoError(suite.T(), err, "failed to create test user")
	suite.user = user
}

// TearDownTest runs after each test
func (suite *SessionTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *SessionTestSuite) TestCreateAndValidateSession() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	expiresAt := time.Now().Add(30 * 24 * time.Hour)
	err = suite.db.CreateSession(token, suite.user.ID, expiresAt)
	require.NoError(suite.T(), err)

	// Validate the session
	sessionUser, err := suite.db.ValidateSession(token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "testuser", sessionUser.Username)
}

func (suite *SessionTestSuite) TestValidateSessionWithInfo() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	expiresAt := time.Now().Add(30 * 24 * time.Hour)
	err = suite.db.CreateSession(token, suite.user.ID, expiresAt)
	require.NoError(suite.T(), err)

	// Get session info
	info, err := suite.db.ValidateSessionWithInfo(token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "testuser", info.User.Username)

	// Check that last_activity is recent
	timeSinceActivity := time.Since(info.LastActivity)
	assert.Less(suite.T(), timeSinceActivity, 5*time.Second, "LastActivity should be recent")
}

func (suite *SessionTestSuite) TestRenewSession() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	originalExpiry := time.Now().Add(30 * 24 * time.Hour)
	err = suite.db.CreateSession(token, suite.user.ID, originalExpiry)
	require.NoError(suite.T(), err)

	// Wait a moment to ensure timestamps differ
	time.Sleep(10 * time.Millisecond)

	// Get original session info
	originalInfo, err := suite.db.ValidateSessionWithInfo(token)
	require.NoError(suite.T(), err)

	// Renew the session
	newExpiry := time.Now().Add(60 * 24 * time.Hour)
	err = suite.db.RenewSession(token, newExpiry)
	require.NoError(suite.T(), err)

	// Get updated session info
	updatedInfo, err := suite.db.ValidateSessionWithInfo(token)
	require.NoError(suite.T(), err)

	// Verify last_activity was updated
	assert.True(suite.T(), updatedInfo.LastActivity.After(originalInfo.LastActivity),
		"LastActivity should be updated after renewal")

	// Verify expires_at was updated
	assert.True(suite.T(), updatedInfo.ExpiresAt.After(originalInfo.ExpiresAt),
		"ExpiresAt should be extended after renewal")
}

func (suite *SessionTestSuite) TestDeleteSession() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	expiresAt := time.Now().Add(30 * 24 * time.Hour)
	err = suite.db.CreateSession(token, suite.user.ID, expiresAt)
	require.NoError(suite.T(), err)

	// Verify session exists
	_, err = suite.db.ValidateSession(token)
	require.NoError(suite.T(), err, "session should exist before deletion")

	// Delete session
	err = suite.db.DeleteSession(token)
	require.NoError(suite.T(), err)

	// Verify session is gone
	_, err = suite.db.ValidateSession(token)
	assert.Error(suite.T(), err, "expected error after deleting session")
}

// Test suite runners
func TestClaimSuite(t *testing.T) {
	suite.Run(t, new(ClaimTestSuite))
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
