// Package cart holds the in-memory selection a customer builds before
// checkout. A cart lives entirely in the server session; nothing is
// persisted until the order is submitted.
package cart

import (
	"strconv"
	"sync"
	"time"
)

// MenuItemRef is the snapshot of a menu item captured when it is added.
// The price recorded here is what the order will charge, regardless of
// later menu edits.
type MenuItemRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type LineItem struct {
	ID       string      `json:"id"`
	MenuItem MenuItemRef `json:"menu_item"`
	Quantity int         `json:"quantity"`
	Notes    string      `json:"notes,omitempty"`
	Takeaway bool        `json:"takeaway,omitempty"`
}

// Cart is an ordered collection of line items bound to at most one table.
// Invariants: at most one line item per menu item ID, and every quantity
// is >= 1 (dropping to zero removes the line).
type Cart struct {
	mu      sync.Mutex
	items   []LineItem
	tableID *uint
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges into an existing line for the same menu item, leaving its
// notes untouched, or appends a new line. Callers never pass quantity <= 0.
func (c *Cart) AddItem(item MenuItemRef, quantity int, notes string) LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItem.ID == item.ID {
			c.items[i].Quantity += quantity
			return c.items[i]
		}
	}

	line := LineItem{
		ID:       strconv.FormatUint(uint64(item.ID), 10) + "-" + strconv.FormatInt(time.Now().UnixNano(), 10),
		MenuItem: item,
		Quantity: quantity,
		Notes:    notes,
	}
	c.items = append(c.items, line)
	return line
}

// RemoveItem deletes the line unconditionally; no-op when not found.
func (c *Cart) RemoveItem(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(lineID)
}

func (c *Cart) removeLocked(lineID string) {
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity; anything <= 0 removes the line.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(lineID)
		return
	}
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) UpdateNotes(lineID, notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].Notes = notes
			return
		}
	}
}

func (c *Cart) SetTakeaway(lineID string, takeaway bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].Takeaway = takeaway
			return
		}
	}
}

// Clear empties the collection; used after successful order submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// SetTableID binds the cart to the table from a scanned QR code. Idempotent.
func (c *Cart) SetTableID(tableID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableID = &tableID
}

func (c *Cart) TableID() (uint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tableID == nil {
		return 0, false
	}
	return *c.tableID, true
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice is recomputed from the lines on every call. There is no cached
// running total that can drift.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.MenuItem.Price * float64(it.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities across lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// Registry is the single authoritative owner of per-session carts. Handlers
// receive it by injection; there is no package-global cart state.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session, creating it on first use.
func (r *Registry) Get(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[sessionID]
	if !ok {
		c = New()
		r.carts[sessionID] = c
	}
	return c
}

// Drop forgets a session's cart entirely.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}
