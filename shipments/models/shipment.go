package models

import "time"

const DefaultStatus = "pending"

// Shipment represents the shipments table and its JSON form. TrackingData
// is null when nothing was recorded and {} when an empty map was.
type Shipment struct {
	ID               string       `gorm:"primaryKey;size:36" json:"id"`
	ShipperName      string       `gorm:"size:255;not null" json:"shipperName"`
	CarrierName      string       `gorm:"size:255;not null" json:"carrierName"`
	PickupLocation   string       `gorm:"size:500;not null" json:"pickupLocation"`
	DeliveryLocation string       `gorm:"size:500;not null" json:"deliveryLocation"`
	TrackingNumber   *string      `gorm:"size:100" json:"trackingNumber"`
	Status           string       `gorm:"size:50;not null;index" json:"status"`
	Rate             Rate         `gorm:"type:numeric(12,2);not null" json:"rate"`
	TrackingData     TrackingData `gorm:"type:text" json:"trackingData"`
	CreatedAt        time.Time    `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// ShipmentInput is the request body for both create and partial update.
// A nil field is treated as absent. The create and patch tags hold the
// rules for each operation; rate is checked at struct level.
type ShipmentInput struct {
	ShipperName      *string      `json:"shipperName" create:"required,notblank,max=255" patch:"omitempty,notblank,max=255"`
	CarrierName      *string      `json:"carrierName" create:"required,notblank,max=255" patch:"omitempty,notblank,max=255"`
	PickupLocation   *string      `json:"pickupLocation" create:"required,notblank,max=500" patch:"omitempty,notblank,max=500"`
	DeliveryLocation *string      `json:"deliveryLocation" create:"required,notblank,max=500" patch:"omitempty,notblank,max=500"`
	TrackingNumber   *string      `json:"trackingNumber" create:"omitempty,max=100" patch:"omitempty,max=100"`
	Status           *string      `json:"status" create:"omitempty,max=50" patch:"omitempty,max=50"`
	Rate             *Rate        `json:"rate" create:"-" patch:"-"`
	TrackingData     TrackingData `json:"trackingData" create:"-" patch:"-"`
}

// ApplyTo copies every present field of in onto s. ID and timestamps are
// never touched.
func (in ShipmentInput) ApplyTo(s *Shipment) {
	if in.ShipperName != nil {
		s.ShipperName = *in.ShipperName
	}
	if in.CarrierName != nil {
		s.CarrierName = *in.CarrierName
	}
	if in.PickupLocation != nil {
		s.PickupLocation = *in.PickupLocation
	}
	if in.DeliveryLocation != nil {
		s.DeliveryLocation = *in.DeliveryLocation
	}
	if in.TrackingNumber != nil {
		tn := *in.TrackingNumber
		s.TrackingNumber = &tn
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.Rate != nil {
		s.Rate = NewRate(in.Rate.Decimal)
	}
	if in.TrackingData != nil {
		s.TrackingData = in.TrackingData.Clone()
	}
}
