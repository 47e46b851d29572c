package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), "declared status %s should be valid", s)
	}
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.IsValid(), "declared category %s should be valid", c)
	}
	assert.False(t, Category("groceries").IsValid())
}

func TestClaimEnsureDefaults(t *testing.T) {
	c := Claim{Amount: 100}
	c.EnsureDefaults()
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, CategoryOther, c.Category)

	c = Claim{Status: StatusPaid, Category: CategoryTravel}
	c.EnsureDefaults()
	assert.Equal(t, StatusPaid, c.Status, "existing status must be left alone")
	assert.Equal(t, CategoryTravel, c.Category)
}

func TestUserFullName(t *testing.T) {
	u := User{Name: "Thandi", Surname: "Nkosi"}
	assert.Equal(t, "Thandi Nkosi", u.FullName())

	u = User{Name: "Thandi"}
	assert.Equal(t, "Thandi", u.FullName())
}
