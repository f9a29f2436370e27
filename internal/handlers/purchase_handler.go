package handlers

import (
	"net/http"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/gin-gonic/gin"
)

type PurchaseRequest struct {
	Items    []inventory.CartItem `json:"items"`
	Customer inventory.Customer   `json:"customer"`
}

// ValidateCartRequest carries the items of a cart to be checked without
// buying anything.
type ValidateCartRequest struct {
	Items []inventory.CartItem `json:"items"`
}

func PurchaseTickets(c *gin.Context) {
	eventID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Customer.FullName == "" || req.Customer.Email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Customer name and email are required.")
		return
	}

	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	tickets, err := engine.Purchase(c.Request.Context(), eventID, req.Items, req.Customer)
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tickets": tickets,
	})
}

// ValidateCart runs the capacity check alone so a storefront can warn
// before checkout.
func ValidateCart(c *gin.Context) {
	eventID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	var req ValidateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	engine, ok := inventoryEngine(c)
	if !ok {
		return
	}

	if err := engine.Validate(c.Request.Context(), eventID, req.Items); err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
