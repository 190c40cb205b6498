package dto

// Error codes carried in the error envelope.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeStockConflict = "STOCK_CONFLICT"
	CodeConflict      = "CONFLICT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeBadGateway    = "UPSTREAM_UNAVAILABLE"
	CodeTimeout       = "UPSTREAM_TIMEOUT"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorBody names the failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  ErrorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

// StockConflictDetail describes the line that could not be covered.
type StockConflictDetail struct {
	Code      string `json:"package_ndc_11"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// MissingProductsDetail lists unknown product codes.
type MissingProductsDetail struct {
	Missing []string `json:"missing"`
}

// StatusResponse is the health check body.
type StatusResponse struct {
	Status string `json:"status"`
}
