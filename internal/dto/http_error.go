// File: internal/dto/http_error.go
package dto

// HTTPError JSON 端點 (/healthz) 的錯誤回應
type HTTPError struct {
	Message string `json:"message"`
}
