package shipment

import "time"

// JoinEvent is the persisted "customer joined a group shipment" record. The
// product name is copied at join time on purpose: renaming a product later must
// not rewrite history.
type JoinEvent struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"name"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// Notification is the trimmed join event shape served to polling clients.
type Notification struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"name"`
	ProductName string    `json:"productName"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func (e JoinEvent) Notification() Notification {
	return Notification{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		ProductName: e.ProductName,
		JoinedAt:    e.JoinedAt,
	}
}

type RecordJoinInput struct {
	DisplayName string `json:"name"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
}

type PhoneNumber struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
}
