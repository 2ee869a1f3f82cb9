package model

// Product mirrors the product table. A product always has exactly four image
// slots; the productImage columns hold the filename occupying each slot or the
// empty string. Which slots *should* be populated is owned by these columns,
// whether bytes actually exist on disk is owned by the asset store.
type Product struct {
	ProductID          int64   `db:"productID" json:"productID"`
	ProductName        string  `db:"productName" json:"productName"`
	ProductDescription string  `db:"productDescription" json:"productDescription"`
	ProductPrice       float64 `db:"productPrice" json:"productPrice"`
	ProductFeatured    bool    `db:"productFeatured" json:"productFeatured"`
	// ProductFileName predates the slot columns. Kept because legacy rows still
	// resolve through it.
	ProductFileName string `db:"productFileName" json:"productFileName"`
	ProductImage0   string `db:"productImage0" json:"productImage0"`
	ProductImage1   string `db:"productImage1" json:"productImage1"`
	ProductImage2   string `db:"productImage2" json:"productImage2"`
	ProductImage3   string `db:"productImage3" json:"productImage3"`

	Category1ID int64  `db:"category1ID" json:"category1ID"`
	Category2ID *int64 `db:"category2ID" json:"category2ID"`
	Category3ID *int64 `db:"category3ID" json:"category3ID"`

	// Joined names, present on read queries only.
	Category1Name *string `db:"category1Name" json:"category1Name,omitempty"`
	Category2Name *string `db:"category2Name" json:"category2Name,omitempty"`
	Category3Name *string `db:"category3Name" json:"category3Name,omitempty"`

	// ImageURLs is derived by the reconciliation engine: slots 0-3 full images,
	// 4-7 the matching thumbnails, empty string for absent.
	ImageURLs []string `db:"-" json:"imageUrls,omitempty"`
	// ImageErrors lists upload slots rejected during the last mutation, one
	// entry per failed slot. Derived, never stored.
	ImageErrors []string `db:"-" json:"imageErrors,omitempty"`
}

// ImageSlots returns the four slot columns in order.
func (p *Product) ImageSlots() [4]string {
	return [4]string{p.ProductImage0, p.ProductImage1, p.ProductImage2, p.ProductImage3}
}
