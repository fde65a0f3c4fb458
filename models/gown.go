package models

// Gown mirrors a remote gown record. Gowns are identified by the RFID tag
// sewn into the garment; EAN identifies the product (size/style) line.
type Gown struct {
	RFID    string `json:"rfid"`
	EAN     string `json:"ean"`
	InStock bool   `json:"in_stock"`
}
