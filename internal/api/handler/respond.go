package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform response body for every successful API call:
// {"statusCode": ..., "data": ..., "message": ..., "success": true}
// Errors render the same shape with success=false via the error handler.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// listData wraps paginated collections so every listing exposes the same
// shape.
type listData struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
