package services

import (
	"context"

	"go.uber.org/zap"

	"shipment-service/shipments/models"
)

type sample struct {
	shipper, carrier, pickup, delivery, tracking, status, rate string
}

var samples = []sample{
	{"Acme Logistics", "FastFreight Inc", "123 Warehouse Ave, Chicago, IL", "456 Commerce St, Dallas, TX", "TRK001234567", "in_transit", "1250.50"},
	{"Global Supplies Co", "Pacific Haulers", "789 Port Rd, Los Angeles, CA", "321 Industrial Blvd, Seattle, WA", "TRK002345678", "delivered", "890.00"},
	{"Metro Retail Group", "Eastern Express", "555 Distribution Dr, Atlanta, GA", "777 Mall Way, Miami, FL", "", "pending", "2100.75"},
	{"TechParts Ltd", "QuickShip Logistics", "100 Tech Park, Austin, TX", "200 Innovation Ave, Boston, MA", "TRK003456789", "in_transit", "675.25"},
	{"Fresh Foods Distribution", "ColdChain Transport", "400 Farm Rd, Fresno, CA", "600 Market St, Phoenix, AZ", "TRK004567890", "in_transit", "450.00"},
	{"Auto Parts Wholesale", "HeavyHaul Inc", "800 Industrial Pkwy, Detroit, MI", "900 Commerce Dr, Cleveland, OH", "TRK005678901", "pending", "3200.00"},
	{"Pharma Supply Co", "SecureLogistics", "200 Lab Way, New Jersey", "300 Medical Center, Baltimore, MD", "TRK006789012", "in_transit", "1850.50"},
	{"Fashion Imports", "Global Freight", "500 Harbor Blvd, Long Beach, CA", "600 Retail Row, Denver, CO", "", "delivered", "1100.25"},
	{"Electronics Direct", "Express Tech Ship", "700 Silicon Dr, San Jose, CA", "800 Tech Hub, Portland, OR", "TRK007890123", "in_transit", "950.75"},
	{"Building Materials Inc", "Bulk Carriers", "1000 Quarry Rd, Houston, TX", "1100 Construction Ave, Nashville, TN", "TRK008901234", "pending", "4200.00"},
}

func (s sample) input() (models.ShipmentInput, error) {
	rate, err := models.RateFromString(s.rate)
	if err != nil {
		return models.ShipmentInput{}, err
	}
	in := models.ShipmentInput{
		ShipperName:      &s.shipper,
		CarrierName:      &s.carrier,
		PickupLocation:   &s.pickup,
		DeliveryLocation: &s.delivery,
		Status:           &s.status,
		Rate:             &rate,
	}
	if s.tracking != "" {
		in.TrackingNumber = &s.tracking
	}
	return in, nil
}

// Seed creates the sample shipments when storage is empty and returns how
// many were created.
func (s *ShipmentService) Seed(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("Shipments already present, skipping seed", zap.Int64("count", n))
		return 0, nil
	}

	created := 0
	for _, smp := range samples {
		in, err := smp.input()
		if err != nil {
			return created, err
		}
		if _, err := s.Create(ctx, in); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info("Seeded sample shipments", zap.Int("count", created))
	return created, nil
}
