package consoleserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	rejectionsapp "github.com/Apurer/pizzeria-console/internal/domains/rejections/application"
	rejectionsdomain "github.com/Apurer/pizzeria-console/internal/domains/rejections/domain"
)

// Reason is the transport view of a saved rejection reason.
type Reason struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// ReasonPayload adds a reason.
type ReasonPayload struct {
	Reason string `json:"reason" binding:"required"`
}

// ReasonAPI exposes the rejection reason suggestions.
type ReasonAPI struct {
	reasons *rejectionsapp.Service
}

func NewReasonAPI(reasons *rejectionsapp.Service) *ReasonAPI {
	return &ReasonAPI{reasons: reasons}
}

func fromDomainReasons(reasons []rejectionsdomain.Reason) []Reason {
	out := make([]Reason, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, Reason{ID: r.ID, Reason: r.Text})
	}
	return out
}

// Get /v1/reasons
// Lists saved reasons; an unreadable cache yields an empty list
func (api *ReasonAPI) ListReasons(c *gin.Context) {
	c.JSON(http.StatusOK, fromDomainReasons(api.reasons.ListOnce(c.Request.Context())))
}

// Post /v1/reasons
// Saves a new reason
func (api *ReasonAPI) AddReason(c *gin.Context) {
	var payload ReasonPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.reasons.Add(c.Request.Context(), payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Reason{ID: saved.ID, Reason: saved.Text})
}

// Delete /v1/reasons/:reasonId
// Deletes a saved reason
func (api *ReasonAPI) DeleteReason(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("reasonId"), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.reasons.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/reasons/stream
// Streams the reason list as server-sent events until the client leaves
func (api *ReasonAPI) StreamReasons(c *gin.Context) {
	ctx := c.Request.Context()
	updates := api.reasons.ListLive(ctx)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	for {
		select {
		case <-ctx.Done():
			return
		case reasons, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent("reasons", fromDomainReasons(reasons))
			c.Writer.Flush()
		}
	}
}
