package types

import "time"

type Subscriber struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AffiliateEventType string

const (
	AffiliateClick    AffiliateEventType = "click"
	AffiliateView     AffiliateEventType = "view"
	AffiliatePurchase AffiliateEventType = "purchase"
)

type AffiliateEvent struct {
	Id        string             `json:"id"`
	BookId    string             `json:"book_id"`
	Type      AffiliateEventType `json:"event_type"`
	CreatedAt time.Time          `json:"created_at"`
}
