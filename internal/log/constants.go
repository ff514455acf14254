package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyConfig             = "config"
	KeyUserID             = "userId"
	KeyProductID          = "productId"
	KeyProductName        = "productName"
	KeyCart               = "cart"
	KeyCarts              = "carts"
	KeyCartItem           = "cartItem"
	KeyCartItemID         = "cartItemId"
	KeyQuantity           = "quantity"
	KeyExistingQuantity   = "existingQuantity"
	KeyRequestedQuantity  = "requestedQuantity"
	KeyAvailableStock     = "availableStock"
	KeyProduct            = "product"
	KeyProducts           = "products"
	KeyPathValues         = "pathValues"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
)
