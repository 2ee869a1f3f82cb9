package model

// The category hierarchy is three fixed levels, each its own table (category1,
// category2, category3). Level 2 rows reference a level-1 parent, level 3 rows
// a level-2 parent. The tables are only ever read through the three-way join
// below, so each row shape is the join row, not a per-table struct.
//
// CategoryRow is one row of that join. Also served flat to the admin UI.
type CategoryRow struct {
	Category1ID   int64   `db:"category1ID" json:"category1ID"`
	Category1Name string  `db:"category1Name" json:"category1Name"`
	Category2ID   *int64  `db:"category2ID" json:"category2ID"`
	Category2Name *string `db:"category2Name" json:"category2Name"`
	Category3ID   *int64  `db:"category3ID" json:"category3ID"`
	Category3Name *string `db:"category3Name" json:"category3Name"`
}

// CategoryNode is the nested shape the frontend navigates. Subcategories is
// always serialized, as an empty array when there are none; the frontend
// iterates it unconditionally.
type CategoryNode struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Subcategories []CategoryNode `json:"subcategories"`
}
