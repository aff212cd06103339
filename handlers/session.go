package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vetcare/models"
	"vetcare/services/scheduler"
	"vetcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionService is the scheduling behaviour the HTTP layer needs.
type SessionService interface {
	List(ctx context.Context, doctorName string, from, to *time.Time) ([]models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, in models.CreateSessionInput) (*models.Session, error)
	Update(ctx context.Context, id string, in models.UpdateSessionInput) (*models.Session, error)
	Remove(ctx context.Context, id string) error
	ValidateSlot(doctorName, sessionType string, hasDate bool) error
	Roster() scheduler.Roster
	Location() *time.Location
}

type SessionHandler struct {
	Service SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

// parseDate accepts a bare calendar day (read in the clinic's zone) or RFC 3339.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is neither YYYY-MM-DD nor RFC 3339", scheduler.ErrInvalidDate, raw)
	}
	return t, nil
}

func (h *SessionHandler) optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw, h.Service.Location())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	from, err := h.optionalDate(c.Query("from"))
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := h.optionalDate(c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	sessions, err := h.Service.List(c.Request.Context(), c.Query("doctorName"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	date, err := h.optionalDate(req.SessionDate)
	if err != nil {
		// An unreadable date ranks after the field and roster checks.
		if slotErr := h.Service.ValidateSlot(req.DoctorName, req.SessionType, true); slotErr != nil {
			err = slotErr
		}
		respondError(c, err)
		return
	}

	sess, err := h.Service.Create(c.Request.Context(), models.CreateSessionInput{
		DoctorName:    req.DoctorName,
		SessionType:   req.SessionType,
		SessionDate:   date,
		IsAvailable:   req.IsAvailable,
		SpecialNotice: req.SpecialNotice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	getLogger(c).Info("Session added", zap.String("id", sess.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"session": sess})
}

func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "MissingField", "Missing session ID in path")
		return
	}

	sess, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (h *SessionHandler) UpdateSessionHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "MissingField", "Missing session ID in path")
		return
	}

	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	in := models.UpdateSessionInput{
		DoctorName:    req.DoctorName,
		SessionType:   req.SessionType,
		IsAvailable:   req.IsAvailable,
		SpecialNotice: req.SpecialNotice,
		Status:        req.Status,
	}
	if req.SessionDate != nil {
		date, err := parseDate(*req.SessionDate, h.Service.Location())
		if err != nil {
			respondError(c, err)
			return
		}
		in.SessionDate = &date
	}

	sess, err := h.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "MissingField", "Missing session ID in path")
		return
	}

	if err := h.Service.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	getLogger(c).Info("Session deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// ListDoctorsHandler exposes the doctor roster and each doctor's fixed session type.
func (h *SessionHandler) ListDoctorsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"doctors": h.Service.Roster().Doctors()})
}
