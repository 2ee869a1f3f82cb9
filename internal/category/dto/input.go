package dto

type RenameCategoryInput struct {
	CategoryName  string `json:"categoryName" binding:"required"`
	CategoryID    int64  `json:"categoryID" binding:"required,gt=0"`
	CategoryLevel int    `json:"categoryLevel" binding:"required,oneof=1 2 3"`
}

type CreateCategoryInput struct {
	CategoryName  string `json:"categoryName" binding:"required"`
	CategoryLevel int    `json:"categoryLevel" binding:"required,oneof=1 2 3"`
	// ParentID must be absent for level 1 and a positive ID for levels 2 and 3;
	// the usecase enforces the cross-field rule.
	ParentID *int64 `json:"parentId"`
	// CategoryPath is the legacy directory (relative to the image root) whose
	// lifecycle tracks the row.
	CategoryPath string `json:"categoryPath" binding:"required"`
}

type DeleteCategoryInput struct {
	CategoryID    int64  `json:"categoryID" binding:"required,gt=0"`
	CategoryLevel int    `json:"categoryLevel" binding:"required,oneof=1 2 3"`
	CategoryPath  string `json:"categoryPath" binding:"required"`
}
