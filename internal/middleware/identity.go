package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// StudentIDHeader carries the acting student for portal routes.
	StudentIDHeader = "X-Student-ID"

	studentIDKey = "studentID"
)

// Identity resolves the acting student from the request header, falling back
// to the configured default when the header is absent or malformed.
func Identity(defaultStudentID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID := defaultStudentID
		if raw := c.GetHeader(StudentIDHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				studentID = id
			}
		}
		c.Set(studentIDKey, studentID)
		c.Next()
	}
}

// StudentID returns the acting student id set by Identity.
func StudentID(c *gin.Context) int64 {
	if v, ok := c.Get(studentIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
