package models

// CheckOutRequest are the arguments of the remote check-out call.
type CheckOutRequest struct {
	BookingID int64  `json:"booking_id"`
	RFID      string `json:"rfid"`
	EAN       string `json:"ean"`
	EventID   int64  `json:"event_id"`
}

// CheckInRequest are the arguments of the remote check-in call.
//
// SkipRFIDCheck tells the remote side not to validate that the presented tag
// matches the booking's recorded gown. Queued replays set it for the check-in
// half of a gown change, where local state may already have drifted from what
// the server recorded at check-out time.
type CheckInRequest struct {
	BookingID     int64  `json:"booking_id"`
	RFID          string `json:"rfid"`
	EventID       int64  `json:"event_id"`
	SkipRFIDCheck bool   `json:"skip_rfid_check,omitempty"`
}

// BookingListRequest selects and orders an event's bookings.
type BookingListRequest struct {
	EventID       int64  `json:"event_id"`
	SortBy        string `json:"sort_by,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
}
