package dto

// ProductDetails is the JSON payload carried in the multipart "productDetails"
// field of the add/edit endpoints. Image bytes travel as separate named parts.
type ProductDetails struct {
	ProductID          int64   `json:"productID"`
	ProductName        string  `json:"productName" binding:"required"`
	ProductDescription string  `json:"productDescription"`
	ProductPrice       float64 `json:"productPrice"`
	ProductFeatured    bool    `json:"productFeatured"`
	Category1ID        int64   `json:"category1ID" binding:"required"`
	Category2ID        *int64  `json:"category2ID"`
	Category3ID        *int64  `json:"category3ID"`
}

// DeleteProductInput mirrors the delete request body: the client sends the
// whole product object, only the ID matters server-side.
type DeleteProductInput struct {
	Product struct {
		ProductID int64 `json:"productID" binding:"required"`
	} `json:"product" binding:"required"`
}
