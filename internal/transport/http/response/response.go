package response

import "github.com/gin-gonic/gin"

// APIResponse is the envelope every route answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, APIResponse{
		Success: true,
		Data:    data,
	})
}

func Message(c *gin.Context, message string) {
	c.JSON(200, APIResponse{
		Success: true,
		Message: message,
	})
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, APIResponse{
		Success: false,
		Error:   &APIError{Message: message},
	})
}

// ValidationError returns a 400 with per-field detail.
func ValidationError(c *gin.Context, details interface{}) {
	c.JSON(400, APIResponse{
		Success: false,
		Error: &APIError{
			Message: "Validation error",
			Details: details,
		},
	})
}
