package usecase

import "github.com/craftmarket/catalog-service/internal/model"

// BuildCategoryTree restructures the flat three-way join into the nested shape
// the storefront navigation consumes. Row order is preserved at every level.
func BuildCategoryTree(rows []model.CategoryRow) []model.CategoryNode {
	tree := make([]model.CategoryNode, 0)
	topIndex := make(map[int64]int)   // category1ID -> index in tree
	midIndex := make(map[int64]int)   // category2ID -> index in its parent's subcategories
	midParent := make(map[int64]int64) // category2ID -> category1ID

	for _, row := range rows {
		ti, ok := topIndex[row.Category1ID]
		if !ok {
			tree = append(tree, model.CategoryNode{
				ID:            row.Category1ID,
				Name:          row.Category1Name,
				Subcategories: []model.CategoryNode{},
			})
			ti = len(tree) - 1
			topIndex[row.Category1ID] = ti
		}

		if row.Category2ID == nil || row.Category2Name == nil {
			continue
		}

		mi, ok := midIndex[*row.Category2ID]
		if !ok {
			tree[ti].Subcategories = append(tree[ti].Subcategories, model.CategoryNode{
				ID:            *row.Category2ID,
				Name:          *row.Category2Name,
				Subcategories: []model.CategoryNode{},
			})
			mi = len(tree[ti].Subcategories) - 1
			midIndex[*row.Category2ID] = mi
			midParent[*row.Category2ID] = row.Category1ID
		}
		// The join can interleave parents, so resolve the level-2 node through
		// the parent recorded at first sight, not through this row's parent.
		mid := &tree[topIndex[midParent[*row.Category2ID]]].Subcategories[mi]

		if row.Category3ID == nil || row.Category3Name == nil {
			continue
		}

		exists := false
		for _, sub := range mid.Subcategories {
			if sub.ID == *row.Category3ID {
				exists = true
				break
			}
		}
		if !exists {
			mid.Subcategories = append(mid.Subcategories, model.CategoryNode{
				ID:            *row.Category3ID,
				Name:          *row.Category3Name,
				Subcategories: []model.CategoryNode{},
			})
		}
	}

	return tree
}
