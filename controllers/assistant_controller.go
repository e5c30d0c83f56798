package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marktudor11/fitlytics/services"
	"github.com/marktudor11/fitlytics/utils"
)

type AssistantController struct {
	Assistant *services.AssistantService
}

func NewAssistantController(svc *services.AssistantService) *AssistantController {
	return &AssistantController{Assistant: svc}
}

type chatRequest struct {
	Q string `json:"q" form:"q"`
}

// Chat relays one sanitized question upstream. Empty input never reaches the
// external service, and upstream failures come back as a generic error
// payload rather than a crash.
func (h *AssistantController) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "answer": "Empty question."})
		return
	}

	q := utils.StripTags(req.Q)
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "answer": "Empty question."})
		return
	}

	answer, err := h.Assistant.Ask(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, services.ErrMissingAPIKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "answer": "API key missing."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "answer": fmt.Sprintf("Error: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "answer": answer})
}
