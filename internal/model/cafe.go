package model

// Cafe represents one café listing as stored in the `cafes` table.
// Each field corresponds to a column. URL fields are opaque strings:
// they are validated for syntactic shape at the form layer but never
// checked for reachability.
//
// Fields:
//
//	ID           – primary key, assigned by the database on insert.
//	Name         – display name, unique across all cafés.
//	MapURL       – link to the café on a map provider.
//	ImgURL       – link to a photo of the café.
//	Location     – free-text district or address line.
//	HasSockets   – power sockets available.
//	HasToilet    – customer toilet available.
//	HasWifi      – usable wifi available.
//	CanTakeCalls – quiet enough / allowed to take calls.
//	Seats        – seating bucket (one of SeatChoices), empty when unknown.
//	CoffeePrice  – pre-formatted price string such as "£2.90", empty when
//	               unknown. The formatted string is the stored value; there
//	               is no separate numeric column.
type Cafe struct {
	ID           int64  // cafes.id
	Name         string // cafes.name (unique)
	MapURL       string // cafes.map_url
	ImgURL       string // cafes.img_url
	Location     string // cafes.location
	HasSockets   bool   // cafes.has_sockets
	HasToilet    bool   // cafes.has_toilet
	HasWifi      bool   // cafes.has_wifi
	CanTakeCalls bool   // cafes.can_take_calls
	Seats        string // cafes.seats (nullable)
	CoffeePrice  string // cafes.coffee_price (nullable)
}

// SeatChoices is the fixed set of seating buckets a café can advertise.
// The form select field offers exactly these values and the validator
// rejects anything else.
var SeatChoices = []string{"0-10", "10-20", "20-30", "30-40", "40-50", "50+"}
