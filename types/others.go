package types

import (
	"math"
	"time"
)

// User identifies a WhatsApp user. Name is taken from the delivery profile
// and may be empty for status updates.
type User struct {
	WaID string `json:"wa_id"`
	Name string `json:"name,omitempty"`
}

// Metadata identifies the business phone number a delivery was sent to.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// MediaObject describes an inbound media attachment.
type MediaObject struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	SHA256   string `json:"sha256,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
	Voice    bool   `json:"voice,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// Reaction is an emoji reaction to a previously sent message. A removed
// reaction arrives with an empty emoji.
type Reaction struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji,omitempty"`
}

// IsRemoved reports whether the reaction was withdrawn rather than added.
func (r *Reaction) IsRemoved() bool {
	return r.Emoji == ""
}

// Location is a shared location message.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
	URL       string  `json:"url,omitempty"`
}

// IsCurrent reports whether the location was shared live rather than picked
// from the map (live locations carry no name or address).
func (l *Location) IsCurrent() bool {
	return l.Name == "" && l.Address == ""
}

const earthRadiusKm = 6371.0

// InRadius reports whether the location lies within radiusKm kilometers of
// the given point, using the haversine distance.
func (l *Location) InRadius(lat, lon, radiusKm float64) bool {
	dLat := (lat - l.Latitude) * math.Pi / 180
	dLon := (lon - l.Longitude) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(l.Latitude*math.Pi/180)*math.Cos(lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	d := 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
	return d <= radiusKm
}

// Contact is a shared contact card.
type Contact struct {
	Name struct {
		FormattedName string `json:"formatted_name"`
		FirstName     string `json:"first_name,omitempty"`
		LastName      string `json:"last_name,omitempty"`
	} `json:"name"`
	Phones []ContactPhone `json:"phones,omitempty"`
	Emails []struct {
		Email string `json:"email"`
		Type  string `json:"type,omitempty"`
	} `json:"emails,omitempty"`
	Org *struct {
		Company string `json:"company,omitempty"`
	} `json:"org,omitempty"`
}

// ContactPhone is one phone entry of a shared contact. WaID is set only when
// the number has a WhatsApp account.
type ContactPhone struct {
	Phone string `json:"phone"`
	WaID  string `json:"wa_id,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Order is a cart sent from a product message.
type Order struct {
	CatalogID string         `json:"catalog_id"`
	Text      string         `json:"text,omitempty"`
	Products  []OrderProduct `json:"product_items"`
}

// OrderProduct is one cart line item.
type OrderProduct struct {
	SKU      string  `json:"product_retailer_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"item_price"`
	Currency string  `json:"currency"`
}

// TotalPrice sums quantity times item price over all products.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, p := range o.Products {
		total += float64(p.Quantity) * p.Price
	}
	return total
}

// Error is a platform error attached to an update or a failed status.
type Error struct {
	Code      int    `json:"code"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	ErrorData *struct {
		Details string `json:"details"`
	} `json:"error_data,omitempty"`
}

// Conversation is the billing conversation a status update belongs to.
type Conversation struct {
	ID     string `json:"id"`
	Origin *struct {
		Type string `json:"type"`
	} `json:"origin,omitempty"`
	ExpirationTimestamp string `json:"expiration_timestamp,omitempty"`
}

// Category returns the conversation origin type, or unknown.
func (c *Conversation) Category() string {
	if c.Origin == nil || c.Origin.Type == "" {
		return "unknown"
	}
	return c.Origin.Type
}

// Expiration returns the conversation expiration time, zero if absent.
func (c *Conversation) Expiration() time.Time {
	if c.ExpirationTimestamp == "" {
		return time.Time{}
	}
	return parseTimestamp(c.ExpirationTimestamp)
}

// Pricing describes the pricing model applied to a conversation.
type Pricing struct {
	Billable     bool   `json:"billable"`
	PricingModel string `json:"pricing_model"`
	Category     string `json:"category,omitempty"`
}
