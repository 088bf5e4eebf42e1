package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Fail writes an error envelope with the catalog message for code.
func Fail(c *gin.Context, statusCode int, code string) {
	Error(c, statusCode, code, Message(code))
}

// CustomError writes the envelope and aborts the chain. Used by middleware.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// Unauthenticated aborts with 401 and tells the caller where to sign in.
func Unauthenticated(c *gin.Context, redirect string) {
	c.AbortWithStatusJSON(401, gin.H{
		"success": false,
		"error": gin.H{
			"code":    CodeUnauthenticated,
			"message": Message(CodeUnauthenticated),
			"details": gin.H{"redirect": redirect},
		},
	})
}
