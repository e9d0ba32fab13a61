package models

import "time"

type PropertyType string

const (
	TypeApartment        PropertyType = "Apartment"
	TypeCondo            PropertyType = "Condo"
	TypeIndependentHouse PropertyType = "Independent House"
	TypeVilla            PropertyType = "Villa"
	TypeStudioApartment  PropertyType = "Studio Apartment"
	TypePenthouse        PropertyType = "Penthouse"
	TypeLoft             PropertyType = "Loft"
	TypeRowHouse         PropertyType = "Row House"
	TypeBungalow         PropertyType = "Bungalow"
	TypeTownhouse        PropertyType = "Townhouse"
	TypeHouse            PropertyType = "House"
	TypeFarmHouse        PropertyType = "Farm House"
	TypeFlat             PropertyType = "Flat"
)

// PropertyTypes lists every accepted property type in display order.
var PropertyTypes = []PropertyType{
	TypeFarmHouse, TypeFlat, TypeApartment, TypeCondo, TypeTownhouse, TypeVilla,
	TypeStudioApartment, TypePenthouse, TypeLoft, TypeRowHouse, TypeBungalow,
	TypeIndependentHouse, TypeHouse,
}

func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "Available"
	StatusSold      PropertyStatus = "Sold"
)

// MaxImages is the upper bound on images attached to a single property.
const MaxImages = 5

type Property struct {
	ID            int64          `json:"id" bson:"id"`
	Title         string         `json:"title" bson:"title" validate:"required,min=5,max=200"`
	Description   string         `json:"description" bson:"description" validate:"max=1000"`
	Address       string         `json:"address" bson:"address" validate:"required,min=5,max=200"`
	City          string         `json:"city" bson:"city" validate:"required,min=2,alphaspace"`
	State         string         `json:"state" bson:"state" validate:"required,min=2,alphaspace"`
	Zip           string         `json:"zip" bson:"zip" validate:"required,zip6"`
	Price         float64        `json:"price" bson:"price" validate:"gte=1000,lte=999999999"`
	Bedrooms      int            `json:"bedrooms" bson:"bedrooms" validate:"gte=0,lte=20"`
	Bathrooms     int            `json:"bathrooms" bson:"bathrooms" validate:"gte=0,lte=20"`
	SquareFootage int            `json:"squareFootage" bson:"squareFootage" validate:"gte=0,lte=50000"`
	PropertyType  PropertyType   `json:"propertyType" bson:"propertyType" validate:"propertytype"`
	Status        PropertyStatus `json:"status,omitempty" bson:"status" validate:"omitempty,oneof=Available Sold"`
	Featured      bool           `json:"featured,omitempty" bson:"featured"`
	VideoLink     string         `json:"videoLink,omitempty" bson:"videoLink,omitempty" validate:"omitempty,instagram"`
	Images        []string       `json:"images" bson:"images" validate:"max=5"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// IsAvailable reports whether the property can still be sold. A missing status counts as available.
func (p *Property) IsAvailable() bool {
	return p.Status == "" || p.Status == StatusAvailable
}

// Clone returns a deep copy so callers cannot mutate stored images.
func (p Property) Clone() Property {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}

// ImageFile is one uploaded image before it is persisted.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}
