package handlers

import (
	"net/http"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CheckInRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// GetTicketQR renders the signed admission QR for a ticket as a PNG.
func GetTicketQR(c *gin.Context) {
	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	ticket, err := engine.TicketByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	png, err := helpers.RenderTicketQR(ticket.QRCode, middleware.GetQRSecret(c))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func CancelTicket(c *gin.Context) {
	eventID, ok := requireOwnedEventID(c)
	if !ok {
		return
	}

	ticketID, err := helpers.ParseUUIDParam(c, "ticketId")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket id.")
		return
	}

	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	ticket, err := engine.CancelTicket(c.Request.Context(), eventID, ticketID)
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket cancelled successfully.",
		"ticket":  ticket,
	})
}

// CheckIn verifies a scanned QR payload and admits its holder.
func CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	eventID, ok := requireOwnedEventID(c)
	if !ok {
		return
	}

	code, err := helpers.VerifyTicketQR(req.QRData, middleware.GetQRSecret(c))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code.")
		return
	}

	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	ticket, err := engine.CheckIn(c.Request.Context(), eventID, code)
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket checked in successfully.",
		"ticket":  ticket,
	})
}
