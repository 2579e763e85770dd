package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-service/shipments/models"
)

func strPtr(s string) *string { return &s }

func storedShipment() models.Shipment {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Shipment{
		ID:               "id-1",
		ShipperName:      "Acme",
		CarrierName:      "FastFreight",
		PickupLocation:   "Chicago",
		DeliveryLocation: "Dallas",
		TrackingNumber:   strPtr("TRK1"),
		Status:           "pending",
		Rate:             models.NewRate(decimal.RequireFromString("10.50")),
		TrackingData:     models.TrackingData{"hub": "ORD"},
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

func TestApplyTo_EmptyInputLeavesEverything(t *testing.T) {
	s := storedShipment()
	before := storedShipment()

	models.ShipmentInput{}.ApplyTo(&s)

	assert.Equal(t, before, s)
}

func TestApplyTo_OverwritesOnlyPresentFields(t *testing.T) {
	s := storedShipment()
	rate := models.NewRate(decimal.RequireFromString("99.999"))

	models.ShipmentInput{
		Status:       strPtr("delivered"),
		Rate:         &rate,
		TrackingData: models.TrackingData{"hub": "DFW", "scans": []any{"a", "b"}},
	}.ApplyTo(&s)

	assert.Equal(t, "delivered", s.Status)
	assert.Equal(t, "100.00", s.Rate.String())
	assert.Equal(t, "DFW", s.TrackingData["hub"])

	assert.Equal(t, "id-1", s.ID)
	assert.Equal(t, "Acme", s.ShipperName)
	assert.Equal(t, "FastFreight", s.CarrierName)
	assert.Equal(t, "Chicago", s.PickupLocation)
	assert.Equal(t, "Dallas", s.DeliveryLocation)
	require.NotNil(t, s.TrackingNumber)
	assert.Equal(t, "TRK1", *s.TrackingNumber)
	assert.True(t, s.CreatedAt.Equal(storedShipment().CreatedAt))
}

func TestApplyTo_DoesNotAliasInput(t *testing.T) {
	s := storedShipment()
	tn := "TRK2"
	in := models.ShipmentInput{
		TrackingNumber: &tn,
		TrackingData:   models.TrackingData{"hub": "LAX"},
	}

	in.ApplyTo(&s)
	tn = "changed"
	in.TrackingData["hub"] = "changed"

	assert.Equal(t, "TRK2", *s.TrackingNumber)
	assert.Equal(t, "LAX", s.TrackingData["hub"])
}

func TestShipmentInput_DecodesAbsentAndNullAsNil(t *testing.T) {
	var in models.ShipmentInput
	err := json.Unmarshal([]byte(`{"status":"delivered","trackingNumber":null,"trackingData":null}`), &in)
	require.NoError(t, err)

	require.NotNil(t, in.Status)
	assert.Equal(t, "delivered", *in.Status)
	assert.Nil(t, in.TrackingNumber)
	assert.Nil(t, in.TrackingData)
	assert.Nil(t, in.ShipperName)
	assert.Nil(t, in.Rate)
}

func TestShipmentInput_IgnoresClientID(t *testing.T) {
	var in models.ShipmentInput
	err := json.Unmarshal([]byte(`{"id":"client-chosen","shipperName":"Acme"}`), &in)
	require.NoError(t, err)

	s := models.Shipment{ID: "server"}
	in.ApplyTo(&s)
	assert.Equal(t, "server", s.ID)
}

func TestShipment_JSONShape(t *testing.T) {
	s := storedShipment()
	s.TrackingNumber = nil
	s.TrackingData = nil

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "id-1", got["id"])
	assert.Equal(t, "Acme", got["shipperName"])
	assert.Equal(t, "10.50", got["rate"])
	assert.Nil(t, got["trackingNumber"])
	assert.Contains(t, got, "trackingData")
	assert.Nil(t, got["trackingData"])
	assert.Equal(t, "2025-01-02T03:04:05Z", got["createdAt"])
}
