package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeSuccess          = 20001
	CodeParamInvalid     = 40001
	CodeValidationFailed = 40002
	CodeNotFound         = 40401
	CodeInternalServer   = 50001
)

var httpStatus = map[int]int{
	CodeSuccess:          http.StatusOK,
	CodeParamInvalid:     http.StatusBadRequest,
	CodeValidationFailed: http.StatusBadRequest,
	CodeNotFound:         http.StatusNotFound,
	CodeInternalServer:   http.StatusInternalServerError,
}

// ResponseData is the envelope for every API response
type ResponseData struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var message = map[int]string{
	CodeSuccess:          "success",
	CodeParamInvalid:     "invalid request parameters",
	CodeValidationFailed: "request validation failed",
	CodeNotFound:         "resource not found",
	CodeInternalServer:   "internal server error",
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(statusOf(code), ResponseData{
		Code:    code,
		Message: message[code],
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(statusOf(code), ResponseData{
		Code:    code,
		Message: message[code],
		Data:    data,
	})
}

// ToErrorResponse flattens an error or message into response data.
func ToErrorResponse(v interface{}) interface{} {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

func statusOf(code int) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
