package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeEmailExists        = 40002
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeNotFound           = 40400
	CodeValidation         = 42200
	CodeInternalServer     = 50000
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Login   string      `json:"login,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// ValidationFailed returns the per-field error bag of a rejected write.
func ValidationFailed(c *gin.Context, fields interface{}) {
	c.JSON(422, APIResponse{
		Code:    CodeValidation,
		Message: "validation failed",
		Errors:  fields,
	})
}

// Unauthenticated carries the login entry point the client-side view
// layer should navigate to, the token-API analog of a login redirect.
func Unauthenticated(c *gin.Context, loginPath, message string) {
	c.JSON(401, APIResponse{
		Code:    CodeUnauthorized,
		Message: message,
		Login:   loginPath,
	})
}
