package response

import (
	"github.com/gin-gonic/gin"
)

// Mọi response đều là JSON có ít nhất field "message".
// Payload entity được merge phẳng cạnh message:
//   {"message": "...", "book": {...}}

// Message trả về body chỉ có message.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// Success trả về message kèm payload dưới key được đặt tên
// (vd: "category", "author", "book", "books").
func Success(c *gin.Context, statusCode int, message string, key string, payload interface{}) {
	c.JSON(statusCode, gin.H{"message": message, key: payload})
}

// List trả về bare array (GET /categories/, GET /authors/ của API gốc
// trả thẳng mảng, không bọc envelope).
func List(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

func BadRequest(c *gin.Context, message string) {
	Message(c, 400, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, 404, message)
}

func InternalServerError(c *gin.Context, message string) {
	Message(c, 500, message)
}
