// Package qr renders the printable table QR codes that open the ordering
// page pre-bound to a table.
package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type Generator interface {
	TableQR(tableID uint) ([]byte, error)
}

type DefaultGenerator struct {
	BaseURL string
}

// TableQR encodes the order URL for a table as a 256px PNG.
func (g DefaultGenerator) TableQR(tableID uint) ([]byte, error) {
	data := fmt.Sprintf("%s/order?table=%d", g.BaseURL, tableID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
