package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gosabda/internal/api/middleware"
	"github.com/jonesrussell/gosabda/internal/domain"
)

// respond writes a success envelope. Nil data and metadata are omitted
// from the JSON body.
func respond(c *gin.Context, status int, message string, data, metadata any) {
	c.JSON(status, domain.APIResponse{
		Status:   domain.StatusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// respondError writes an error envelope carrying the error type and the
// request correlation id.
func respondError(c *gin.Context, status int, message, errorType string) {
	c.JSON(status, domain.APIResponse{
		Status:  domain.StatusError,
		Message: message,
		Metadata: domain.ErrorMetadata{
			ErrorType: errorType,
			RequestID: middleware.RequestIDFrom(c),
		},
	})
}

// copyrightLine attributes the devotional content to its publisher.
func copyrightLine() string {
	return fmt.Sprintf("Copyright © 1997-%d Yayasan Lembaga SABDA (YLSA).", time.Now().Year())
}
