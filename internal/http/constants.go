package http

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"
)
