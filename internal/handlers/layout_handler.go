package handlers

import (
	"net/http"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type LayoutRequest struct {
	Zones []inventory.ZoneInput `json:"zones"`
	Seats []inventory.SeatInput `json:"seats"`
}

func UpdateLayout(c *gin.Context) {
	var req LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid layout payload.")
		return
	}

	eventID, ok := requireOwnedEventID(c)
	if !ok {
		return
	}

	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	event, err := engine.SetLayout(c.Request.Context(), eventID, req.Zones, req.Seats)
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func inventoryEngine(c *gin.Context) (*inventory.Engine, bool) {
	engine := middleware.GetInventory(c)
	if engine == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Inventory not configured.")
		return nil, false
	}
	return engine, true
}
