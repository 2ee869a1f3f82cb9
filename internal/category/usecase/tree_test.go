package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftmarket/catalog-service/internal/model"
)

func row(c1 int64, c1Name string, c2 *int64, c2Name *string, c3 *int64, c3Name *string) model.CategoryRow {
	return model.CategoryRow{
		Category1ID:   c1,
		Category1Name: c1Name,
		Category2ID:   c2,
		Category2Name: c2Name,
		Category3ID:   c3,
		Category3Name: c3Name,
	}
}

func idp(v int64) *int64    { return &v }
func strp(v string) *string { return &v }

func TestBuildCategoryTree_Empty(t *testing.T) {
	tree := BuildCategoryTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestBuildCategoryTree_TopLevelOnly(t *testing.T) {
	rows := []model.CategoryRow{
		row(1, "Clothing", nil, nil, nil, nil),
		row(2, "Shoes", nil, nil, nil, nil),
	}

	tree := BuildCategoryTree(rows)
	require.Len(t, tree, 2)
	assert.Equal(t, "Clothing", tree[0].Name)
	assert.Equal(t, "Shoes", tree[1].Name)
	assert.Empty(t, tree[0].Subcategories)
}

func TestBuildCategoryTree_ThreeLevels(t *testing.T) {
	rows := []model.CategoryRow{
		row(1, "Clothing", idp(10), strp("Shirts"), idp(100), strp("T-Shirts")),
		row(1, "Clothing", idp(10), strp("Shirts"), idp(101), strp("Polos")),
		row(1, "Clothing", idp(11), strp("Pants"), nil, nil),
		row(2, "Shoes", idp(20), strp("Running"), idp(200), strp("Trail")),
	}

	tree := BuildCategoryTree(rows)
	require.Len(t, tree, 2)

	clothing := tree[0]
	require.Len(t, clothing.Subcategories, 2)
	shirts := clothing.Subcategories[0]
	assert.Equal(t, "Shirts", shirts.Name)
	require.Len(t, shirts.Subcategories, 2)
	assert.Equal(t, "T-Shirts", shirts.Subcategories[0].Name)
	assert.Equal(t, "Polos", shirts.Subcategories[1].Name)
	assert.Equal(t, "Pants", clothing.Subcategories[1].Name)
	assert.Empty(t, clothing.Subcategories[1].Subcategories)

	shoes := tree[1]
	require.Len(t, shoes.Subcategories, 1)
	require.Len(t, shoes.Subcategories[0].Subcategories, 1)
	assert.Equal(t, "Trail", shoes.Subcategories[0].Subcategories[0].Name)
}

func TestBuildCategoryTree_MarshalsEmptySubcategoryArrays(t *testing.T) {
	rows := []model.CategoryRow{
		row(1, "Clothing", nil, nil, nil, nil),
		row(2, "Shoes", idp(20), strp("Running"), idp(200), strp("Trail")),
	}

	data, err := json.Marshal(BuildCategoryTree(rows))
	require.NoError(t, err)

	// Every node carries a subcategories array, empty included; the frontend
	// iterates the field without guarding against its absence.
	assert.JSONEq(t, `[
		{"id": 1, "name": "Clothing", "subcategories": []},
		{"id": 2, "name": "Shoes", "subcategories": [
			{"id": 20, "name": "Running", "subcategories": [
				{"id": 200, "name": "Trail", "subcategories": []}
			]}
		]}
	]`, string(data))
}

func TestBuildCategoryTree_DedupsLevel3(t *testing.T) {
	rows := []model.CategoryRow{
		row(1, "Clothing", idp(10), strp("Shirts"), idp(100), strp("T-Shirts")),
		row(1, "Clothing", idp(10), strp("Shirts"), idp(100), strp("T-Shirts")),
	}

	tree := BuildCategoryTree(rows)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Len(t, tree[0].Subcategories[0].Subcategories, 1)
}

func TestBuildCategoryTree_InterleavedParents(t *testing.T) {
	rows := []model.CategoryRow{
		row(1, "Clothing", idp(10), strp("Shirts"), idp(100), strp("T-Shirts")),
		row(2, "Shoes", idp(20), strp("Running"), nil, nil),
		row(1, "Clothing", idp(10), strp("Shirts"), idp(101), strp("Polos")),
	}

	tree := BuildCategoryTree(rows)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Len(t, tree[0].Subcategories[0].Subcategories, 2)
	assert.Len(t, tree[1].Subcategories, 1)
}
