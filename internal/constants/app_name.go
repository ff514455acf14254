package constants

const (
	AppProductService  = "product-service"
	AppCartService     = "cart-service"
	AppApiGateway      = "api-gateway"
	AppMainStorefront  = "main storefront"
	HeaderRequestId    = "X-Request-Id"
	LogPathMainService = "/var/log/storefront.log"
)
