package product

import (
	"encoding/json"
	"time"
)

const (
	SubjectPrefix  = "products"
	SubjectCreated = SubjectPrefix + ".created"
	SubjectUpdated = SubjectPrefix + ".updated"
	SubjectDeleted = SubjectPrefix + ".deleted"
)

// ChangedEvent announces that a product was created, replaced or removed.
type ChangedEvent struct {
	subject    string
	Product    Product   `json:"product"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ChangedEvent) Subject() string {
	return e.subject
}

func (e ChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

func Created(p *Product) ChangedEvent {
	return ChangedEvent{subject: SubjectCreated, Product: *p, OccurredAt: time.Now().UTC()}
}

func Updated(p *Product) ChangedEvent {
	return ChangedEvent{subject: SubjectUpdated, Product: *p, OccurredAt: time.Now().UTC()}
}

func Deleted(p *Product) ChangedEvent {
	return ChangedEvent{subject: SubjectDeleted, Product: *p, OccurredAt: time.Now().UTC()}
}
