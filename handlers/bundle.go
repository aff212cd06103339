// File: vetcare/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Session endpoints
	ListSessionsHandler  gin.HandlerFunc
	CreateSessionHandler gin.HandlerFunc
	GetSessionHandler    gin.HandlerFunc
	UpdateSessionHandler gin.HandlerFunc
	DeleteSessionHandler gin.HandlerFunc

	// Roster
	ListDoctorsHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from a SessionHandler.
func NewHandlerBundle(sh *SessionHandler) *HandlerBundle {
	return &HandlerBundle{
		ListSessionsHandler:  sh.ListSessionsHandler,
		CreateSessionHandler: sh.CreateSessionHandler,
		GetSessionHandler:    sh.GetSessionHandler,
		UpdateSessionHandler: sh.UpdateSessionHandler,
		DeleteSessionHandler: sh.DeleteSessionHandler,
		ListDoctorsHandler:   sh.ListDoctorsHandler,
	}
}
