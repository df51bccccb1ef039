package dashboard

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agrichain/agrichain/i18n"
)

// StockStatus of a retail product
type StockStatus string

const (
	StockAvailable  StockStatus = "Available"
	StockLow        StockStatus = "Low Stock"
	StockOutOfStock StockStatus = "Out of Stock"
)

const lowStockThreshold = 20

// StatusForStock derives the shelf status from a stock count
func StatusForStock(n int) StockStatus {
	switch {
	case n > lowStockThreshold:
		return StockAvailable
	case n > 0:
		return StockLow
	}
	return StockOutOfStock
}

// RetailProduct is a product on a retailer's shelf
type RetailProduct struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	BatchID      string      `json:"batchId"`
	Supplier     string      `json:"supplier"`
	ReceivedDate string      `json:"receivedDate"`
	Status       StockStatus `json:"status"`
	Price        string      `json:"price"`
	Stock        int         `json:"stock"`
	QRPayload    string      `json:"qrCode"`
}

// RetailerStore holds the inventory of one retailer workspace
type RetailerStore struct {
	mu       sync.Mutex
	products []RetailProduct
}

func newRetailerStore() *RetailerStore {
	return &RetailerStore{
		products: []RetailProduct{
			{ID: 1, Name: "Organic Tomatoes", BatchID: "BATCH-001", Supplier: "Distribution Center A", ReceivedDate: "2024-01-22", Status: StockAvailable, Price: "₹4.99", Stock: 50, QRPayload: "QR-TOMATO-001"},
			{ID: 2, Name: "Fresh Lettuce", BatchID: "BATCH-002", Supplier: "Distribution Center B", ReceivedDate: "2024-01-23", Status: StockLow, Price: "₹2.99", Stock: 5, QRPayload: "QR-LETTUCE-002"},
		},
	}
}

func (r *RetailerStore) index(id int64) (int, error) {
	i := slices.IndexFunc(r.products, func(p RetailProduct) bool { return p.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("retail product %d: %w", id, ErrNotFound)
	}
	return i, nil
}

func (r *RetailerStore) setStock(i, stock int) RetailProduct {
	r.products[i].Stock = stock
	r.products[i].Status = StatusForStock(stock)
	return r.products[i]
}

// IncrementStock adds one unit
func (r *RetailerStore) IncrementStock(id int64) (RetailProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.index(id)
	if err != nil {
		return RetailProduct{}, err
	}
	return r.setStock(i, r.products[i].Stock+1), nil
}

// DecrementStock removes one unit; stock never drops below zero
func (r *RetailerStore) DecrementStock(id int64) (RetailProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.index(id)
	if err != nil {
		return RetailProduct{}, err
	}
	if r.products[i].Stock <= 0 {
		return r.setStock(i, 0), fmt.Errorf("retail product %d: %w", id, ErrOutOfStock)
	}
	return r.setStock(i, r.products[i].Stock-1), nil
}

// Product returns one retail product, used for label printing
func (r *RetailerStore) Product(id int64) (RetailProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.index(id)
	if err != nil {
		return RetailProduct{}, err
	}
	return r.products[i], nil
}

// Products returns a copy of the inventory
func (r *RetailerStore) Products() []RetailProduct {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RetailProduct(nil), r.products...)
}

func (r *RetailerStore) view(t Translate) View {
	products := r.Products()

	counts := map[StockStatus]int{}
	for _, p := range products {
		counts[p.Status]++
	}

	return View{
		Title: t(i18n.KeyRetailerDashboard),
		Stats: []Stat{
			{Label: t(i18n.KeyTotalProducts), Value: len(products), Icon: "📦"},
			{Label: t(i18n.KeyAvailable), Value: counts[StockAvailable], Icon: "✅"},
			{Label: t(i18n.KeyLowStock), Value: counts[StockLow], Icon: "⚠️"},
			{Label: t(i18n.KeyOutOfStock), Value: counts[StockOutOfStock], Icon: "❌"},
		},
		Data: map[string]any{"products": products},
	}
}
