package handlers

import (
	"net/http"

	"resto-qr-pos/cart"
	"resto-qr-pos/config"
	"resto-qr-pos/models"

	"github.com/gin-gonic/gin"
)

type AddCartItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
	Takeaway *bool   `json:"takeaway"`
}

type SetCartTableRequest struct {
	TableID uint `json:"table_id" binding:"required"`
}

func cartView(c *cart.Cart) gin.H {
	tableID, hasTable := c.TableID()
	view := gin.H{
		"items":       c.Items(),
		"total_price": c.TotalPrice(),
		"total_items": c.TotalItems(),
	}
	if hasTable {
		view["table_id"] = tableID
	}
	return view
}

// GetCart returns the session's cart with freshly derived totals
func (a *API) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartView(a.Carts.Get(sid)))
}

// AddCartItem adds a menu item to the session cart, merging quantities when
// the item is already present. The price snapshot is taken here.
func (a *API) AddCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !item.Available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
		return
	}

	sessionCart := a.Carts.Get(sid)
	sessionCart.AddItem(cart.MenuItemRef{ID: item.ID, Name: item.Name, Price: item.Price}, req.Quantity, req.Notes)

	c.JSON(http.StatusOK, cartView(sessionCart))
}

// UpdateCartItem patches quantity, notes or the takeaway flag of one line.
// Quantity <= 0 removes the line.
func (a *API) UpdateCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionCart := a.Carts.Get(sid)
	lineID := c.Param("lineId")
	if req.Quantity != nil {
		sessionCart.UpdateQuantity(lineID, *req.Quantity)
	}
	if req.Notes != nil {
		sessionCart.UpdateNotes(lineID, *req.Notes)
	}
	if req.Takeaway != nil {
		sessionCart.SetTakeaway(lineID, *req.Takeaway)
	}

	c.JSON(http.StatusOK, cartView(sessionCart))
}

// RemoveCartItem deletes a line unconditionally
func (a *API) RemoveCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	sessionCart := a.Carts.Get(sid)
	sessionCart.RemoveItem(c.Param("lineId"))
	c.JSON(http.StatusOK, cartView(sessionCart))
}

// ClearCart empties the session cart
func (a *API) ClearCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	sessionCart := a.Carts.Get(sid)
	sessionCart.Clear()
	c.JSON(http.StatusOK, cartView(sessionCart))
}

// SetCartTable binds the cart to a scanned table
func (a *API) SetCartTable(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req SetCartTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var table models.DiningTable
	if err := config.DB.First(&table, req.TableID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	sessionCart := a.Carts.Get(sid)
	sessionCart.SetTableID(table.ID)
	c.JSON(http.StatusOK, cartView(sessionCart))
}
