package serverutils

import "notefiber-editor/internal/dto"

func ErrorResponse(code, message string) *dto.ErrorResponse {
	return &dto.ErrorResponse{Code: code, Message: message}
}
