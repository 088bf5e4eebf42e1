package cart

type AddItemRequest struct {
	Item     Item `json:"item" binding:"required"`
	Quantity int  `json:"quantity" binding:"max=99"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

type DiscountRequest struct {
	Code string `json:"code"`
}
