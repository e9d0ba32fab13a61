package models

import "time"

type ContactStatus string

const (
	ContactNew       ContactStatus = "New"
	ContactContacted ContactStatus = "Contacted"
	ContactResolved  ContactStatus = "Resolved"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactContacted, ContactResolved:
		return true
	}
	return false
}

type Contact struct {
	ID            int64         `json:"id" bson:"id"`
	Name          string        `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email         string        `json:"email" bson:"email" validate:"required,email"`
	Phone         string        `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,phone"`
	Message       string        `json:"message" bson:"message" validate:"required,min=10,max=2000"`
	PropertyID    *int64        `json:"propertyId,omitempty" bson:"propertyId,omitempty"`
	PropertyTitle string        `json:"propertyTitle,omitempty" bson:"propertyTitle,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	Status        ContactStatus `json:"status" bson:"status"`
}

type ContactStatusUpdate struct {
	Status ContactStatus `json:"status" binding:"required"`
}
