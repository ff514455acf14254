package request

type AddCartItem struct {
	UserId    string `validate:"required"      json:"user_id"`
	ProductId int64  `validate:"required,gt=0" json:"product_id"`
	Quantity  int32  `validate:"required,gt=0" json:"quantity"`
}

type RemoveCartItem struct {
	UserId     string `validate:"required"      json:"user_id"`
	CartItemId int64  `validate:"required"      json:"cart_item_id"`
}
