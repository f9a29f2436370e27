package handlers

import (
	"net/http"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/gin-gonic/gin"
)

func GetEventStats(c *gin.Context) {
	eventID, ok := requireOwnedEventID(c)
	if !ok {
		return
	}

	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	stats, err := engine.Stats(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
