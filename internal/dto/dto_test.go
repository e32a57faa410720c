package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbecom/storeapi/internal/domain"
)

func TestFromAddress_DropsOwnerReference(t *testing.T) {
	addr := &domain.Address{
		ID:           5,
		UserID:       42,
		Street:       "14 Baker Street",
		BuildingName: "Hudson House",
		City:         "London",
		State:        "Greater London",
		Country:      "UK",
		Pincode:      "NW16XE",
	}

	got := FromAddress(addr)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, "14 Baker Street", got.Street)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "user_id")
	assert.Contains(t, string(raw), `"addressId":5`)
}

func TestFromCategory(t *testing.T) {
	got := FromCategory(&domain.Category{ID: 3, Name: "Electronics"})
	assert.Equal(t, Category{ID: 3, Name: "Electronics"}, got)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"categoryId":3,"categoryName":"Electronics"}`, string(raw))
}

func TestFromProduct_DropsCategoryReference(t *testing.T) {
	p := &domain.Product{
		ID:           9,
		CategoryID:   3,
		Name:         "Headphones",
		Description:  "Over-ear",
		Image:        "default.png",
		Quantity:     12,
		Price:        100,
		Discount:     20,
		SpecialPrice: 80,
	}

	got := FromProduct(p)
	assert.Equal(t, 80.0, got.SpecialPrice)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "category_id")
	assert.Contains(t, string(raw), `"productName":"Headphones"`)
}

func TestSliceHelpers_PreserveOrder(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	got := FromProducts(products)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	assert.Empty(t, FromAddresses(nil))
	assert.Empty(t, FromCategories(nil))
}
