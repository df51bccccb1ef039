package dashboard

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/agrichain/agrichain/i18n"
)

// ShipmentStatus of a distributor's shipment
type ShipmentStatus string

const (
	ShipmentAccepted  ShipmentStatus = "Accepted"
	ShipmentInTransit ShipmentStatus = "In Transit"
	ShipmentDelivered ShipmentStatus = "Delivered"
)

// shipments only move one step forward
var shipmentTransitions = map[ShipmentStatus]ShipmentStatus{
	ShipmentAccepted:  ShipmentInTransit,
	ShipmentInTransit: ShipmentDelivered,
}

// ParseShipmentStatus matches one of the three shipment states
func ParseShipmentStatus(s string) (ShipmentStatus, bool) {
	for _, status := range []ShipmentStatus{ShipmentAccepted, ShipmentInTransit, ShipmentDelivered} {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// CanAdvanceTo reports whether next directly follows s
func (s ShipmentStatus) CanAdvanceTo(next ShipmentStatus) bool {
	following, ok := shipmentTransitions[s]
	return ok && following == next
}

// Shipment moves a batch between two sites
type Shipment struct {
	ID          int64          `json:"id"`
	ProductName string         `json:"productName"`
	BatchID     string         `json:"batchId"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Status      ShipmentStatus `json:"status"`
	ETA         string         `json:"estimatedArrival"`
	Temperature string         `json:"temperature"`
	Humidity    string         `json:"humidity"`
}

// PendingProduct waits for a distributor to accept or reject it
type PendingProduct struct {
	ID          int64  `json:"id"`
	ProductName string `json:"productName"`
	BatchID     string `json:"batchId"`
	Farmer      string `json:"farmer"`
	HarvestDate string `json:"harvestDate"`
	Location    string `json:"location"`
	RequestDate string `json:"requestDate"`
}

// Defaults for shipments created by accepting a product
const (
	acceptedDestination = "Distribution Center A"
	acceptedTemperature = "3°C"
	acceptedHumidity    = "60%"
	deliveryWindow      = 7 * 24 * time.Hour
)

// DistributorStore holds shipments and incoming products of one workspace
type DistributorStore struct {
	mu        sync.Mutex
	shipments []Shipment
	pending   []PendingProduct
	now       func() time.Time
	ids       *idSource
}

func newDistributorStore(now func() time.Time, ids *idSource) *DistributorStore {
	return &DistributorStore{
		now: now,
		ids: ids,
		shipments: []Shipment{
			{ID: 1, ProductName: "Organic Tomatoes", BatchID: "BATCH-001", From: "Farm A, Nashik, Maharashtra", To: "Distribution Center, Pune", Status: ShipmentInTransit, ETA: "2024-01-25", Temperature: "4°C", Humidity: "65%"},
			{ID: 2, ProductName: "Fresh Lettuce", BatchID: "BATCH-002", From: "Farm B, Ludhiana, Punjab", To: "Distribution Center, Delhi", Status: ShipmentDelivered, ETA: "2024-01-22", Temperature: "2°C", Humidity: "70%"},
		},
		pending: []PendingProduct{
			{ID: 1, ProductName: "Organic Carrots", BatchID: "BATCH-003", Farmer: "Ravi Kumar", HarvestDate: "2024-01-20", Location: "Farm C, Coimbatore, Tamil Nadu", RequestDate: "2024-01-21"},
		},
	}
}

func (d *DistributorStore) pendingIndex(id int64) int {
	return slices.IndexFunc(d.pending, func(p PendingProduct) bool { return p.ID == id })
}

// AcceptProduct turns a pending product into an accepted shipment
func (d *DistributorStore) AcceptProduct(id int64) (Shipment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.pendingIndex(id)
	if i < 0 {
		return Shipment{}, fmt.Errorf("pending product %d: %w", id, ErrNotFound)
	}
	product := d.pending[i]

	shipment := Shipment{
		ID:          d.ids.next(),
		ProductName: product.ProductName,
		BatchID:     product.BatchID,
		From:        product.Location,
		To:          acceptedDestination,
		Status:      ShipmentAccepted,
		ETA:         d.now().Add(deliveryWindow).Format(dateLayout),
		Temperature: acceptedTemperature,
		Humidity:    acceptedHumidity,
	}
	d.shipments = append(d.shipments, shipment)
	d.pending = slices.Delete(d.pending, i, i+1)
	return shipment, nil
}

// RejectProduct drops a pending product
func (d *DistributorStore) RejectProduct(id int64) (PendingProduct, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.pendingIndex(id)
	if i < 0 {
		return PendingProduct{}, fmt.Errorf("pending product %d: %w", id, ErrNotFound)
	}
	product := d.pending[i]
	d.pending = slices.Delete(d.pending, i, i+1)
	return product, nil
}

// UpdateStatus advances a shipment to the next state
func (d *DistributorStore) UpdateStatus(id int64, status string) (Shipment, error) {
	next, ok := ParseShipmentStatus(status)
	if !ok {
		return Shipment{}, fmt.Errorf("%w: unknown shipment status %q", ErrValidation, status)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := slices.IndexFunc(d.shipments, func(s Shipment) bool { return s.ID == id })
	if i < 0 {
		return Shipment{}, fmt.Errorf("shipment %d: %w", id, ErrNotFound)
	}
	current := d.shipments[i].Status
	if !current.CanAdvanceTo(next) {
		return Shipment{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
	}
	d.shipments[i].Status = next
	return d.shipments[i], nil
}

// Shipments returns a copy of the shipment list
func (d *DistributorStore) Shipments() []Shipment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Shipment(nil), d.shipments...)
}

// Pending returns a copy of the products awaiting a decision
func (d *DistributorStore) Pending() []PendingProduct {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]PendingProduct(nil), d.pending...)
}

func (d *DistributorStore) view(t Translate) View {
	shipments := d.Shipments()
	pending := d.Pending()

	var active, delivered int
	for _, s := range shipments {
		switch s.Status {
		case ShipmentInTransit:
			active++
		case ShipmentDelivered:
			delivered++
		}
	}

	return View{
		Title: t(i18n.KeyDistributorDashboard),
		Stats: []Stat{
			{Label: t(i18n.KeyActiveShipments), Value: active, Icon: "🚛"},
			{Label: t(i18n.KeyDeliveredToday), Value: delivered, Icon: "✅"},
			{Label: t(i18n.KeyPendingApprovals), Value: len(pending), Icon: "⏳"},
			{Label: t(i18n.KeyTotalHandled), Value: len(shipments), Icon: "📦"},
		},
		Data: map[string]any{"shipments": shipments, "pendingProducts": pending},
	}
}
