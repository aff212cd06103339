package handlers

import (
	"errors"
	"net/http"

	"vetcare/services/scheduler"
	"vetcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorKinds names each scheduler error in responses, first match wins.
var errorKinds = []struct {
	err    error
	kind   string
	status int
}{
	{scheduler.ErrMissingField, "MissingField", http.StatusBadRequest},
	{scheduler.ErrInvalidDoctor, "InvalidDoctor", http.StatusBadRequest},
	{scheduler.ErrInvalidSessionType, "InvalidSessionType", http.StatusBadRequest},
	{scheduler.ErrDoctorSlotMismatch, "DoctorSlotMismatch", http.StatusBadRequest},
	{scheduler.ErrPastDate, "PastDate", http.StatusBadRequest},
	{scheduler.ErrInvalidDate, "InvalidDate", http.StatusBadRequest},
	{scheduler.ErrInvalidNotice, "InvalidNotice", http.StatusBadRequest},
	{scheduler.ErrDuplicateSession, "DuplicateSession", http.StatusBadRequest},
	{scheduler.ErrInvalidID, "InvalidId", http.StatusBadRequest},
	{scheduler.ErrImmutableSession, "ImmutableSession", http.StatusBadRequest},
	{scheduler.ErrInvalidStatus, "InvalidStatus", http.StatusBadRequest},
	{scheduler.ErrNotFound, "NotFound", http.StatusNotFound},
}

// respondError maps a scheduler error onto an HTTP status and error kind.
func respondError(c *gin.Context, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			utils.JSONError(c, k.status, k.kind, err.Error())
			return
		}
	}
	getLogger(c).Error("session operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "StorageFault", "An unexpected storage error occurred. Please try again later.")
}
