package router

import (
	"fmt"
	"net/http"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

type (
	RequestContext = gin.Context
	MiddlewareFunc = gin.HandlerFunc

	// HandlerFunction is the signature every route handler implements.
	HandlerFunction func(*RequestContext) *ServiceResult
)

// ServiceResult is what a handler hands back to the router. It renders in
// one of three shapes: the {code, data, message} envelope, a flat JSON
// body, or a file download.
type ServiceResult struct {
	StatusCode int
	Data       any
	Message    string

	flat     any
	download *Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

func Result(status int, message string, data any) *ServiceResult {
	return &ServiceResult{StatusCode: status, Data: data, Message: message}
}

func OKResult(data any, message string) *ServiceResult {
	return Result(http.StatusOK, message, data)
}

func BadRequestResult(message string, details any) *ServiceResult {
	return Result(http.StatusBadRequest, message, details)
}

func NotFoundResult(message string) *ServiceResult {
	return Result(http.StatusNotFound, message, nil)
}

// JSONResult renders body without the envelope.
func JSONResult(status int, body any) *ServiceResult {
	return &ServiceResult{StatusCode: status, flat: body}
}

func AttachmentResult(filename, contentType string, content []byte) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		download:   &Attachment{Filename: filename, ContentType: contentType, Content: content},
	}
}

// AppErrorResult maps an AppError to its status and client-safe message.
func AppErrorResult(err error) *ServiceResult {
	return Result(apperrors.HTTPStatusCode(err), apperrors.GetHumanReadableMessage(err), nil)
}

// ValidationErrorResult explains a failed bind against the request model.
// A single field problem becomes the message itself.
func ValidationErrorResult(err error, model any) *ServiceResult {
	if apperrors.IsMalformedBody(err) {
		return BadRequestResult("Invalid request body", nil)
	}

	details := apperrors.FormatValidationErrors(err, model)
	switch len(details) {
	case 0:
		return BadRequestResult("Invalid request body", nil)
	case 1:
		return BadRequestResult(details[0].Message, details)
	default:
		return BadRequestResult("Validation failed", details)
	}
}

func (result *ServiceResult) envelope() gin.H {
	return apperrors.Envelope(result.StatusCode, result.Message, result.Data)
}

// Body is the JSON value written for a non-download result.
func (result *ServiceResult) Body() any {
	if result.flat != nil {
		return result.flat
	}
	return result.envelope()
}

func (result *ServiceResult) write(c *gin.Context) {
	if a := result.download; a != nil {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		c.Data(result.StatusCode, a.ContentType, a.Content)
		return
	}
	c.JSON(result.StatusCode, result.Body())
}

// abort writes the result and stops the handler chain.
func (result *ServiceResult) abort(c *gin.Context) {
	c.Abort()
	result.write(c)
}

// GetLogger returns the request logger injected by the router.
func GetLogger(ctx *RequestContext) *log.Logger {
	return log.GetLoggerInstanceFromContext(ctx.Request.Context(), nil)
}
