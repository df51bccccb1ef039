package srvreg

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/monitoring"
	"github.com/agrichain/agrichain/repository/models"
	"github.com/agrichain/agrichain/session"
)

// Ledger entry types
const (
	activityProductAdded       = "Product Added"
	activityProductTransferred = "Product Transferred"
)

func (sr *ServiceRegistry) workspace(req *Request) *dashboard.Workspace {
	return sr.services.Workspaces.Get(req.Session.ID)
}

// actorName is how a session appears in the ledger
func actorName(sess *session.Session) string {
	if name, ok := sess.User["name"].(string); ok && name != "" {
		return name
	}
	return sess.WalletAddress
}

// recordActivity appends to the ledger; a failed write does not fail the action
func (sr *ServiceRegistry) recordActivity(req *Request, kind, product, batchID string) {
	activity := &models.Activity{
		Type:    kind,
		User:    actorName(req.Session),
		Product: product,
		BatchID: batchID,
	}
	if repoErr := sr.services.Repository.AppendActivity(req.Context(), activity); repoErr != nil {
		sr.logger.Error("Failed to record activity", "type", kind, "batch_id", batchID, "err", repoErr)
	}
}

// DashboardHandler renders the dashboard of the caller's role
func (sr *ServiceRegistry) DashboardHandler(req *Request) (*Response, error) {
	view, err := sr.services.Router.Render(req.Context(), req.Session, req.Lang)
	if err != nil {
		return failure(err)
	}
	return jsonResponse(http.StatusOK, view), nil
}

// AddProductHandler registers a harvested product
func (sr *ServiceRegistry) AddProductHandler(req *Request) (*Response, error) {
	var form dashboard.NewProduct
	if err := decodeBody(req, &form); err != nil {
		return failure(err)
	}

	product, err := sr.workspace(req).Farmer.AddProduct(form)
	if err != nil {
		return failure(err)
	}
	sr.recordActivity(req, activityProductAdded, product.Name, product.BatchID)

	return jsonResponse(http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"product": product,
	}), nil
}

// AcceptProductHandler turns a pending product into a shipment
func (sr *ServiceRegistry) AcceptProductHandler(req *Request) (*Response, error) {
	id, err := int64Param(req, "id")
	if err != nil {
		return failure(err)
	}

	shipment, err := sr.workspace(req).Distributor.AcceptProduct(id)
	if err != nil {
		return failure(err)
	}
	sr.recordActivity(req, activityProductTransferred, shipment.ProductName, shipment.BatchID)

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"message":  "Product accepted",
		"shipment": shipment,
	}), nil
}

// RejectProductHandler drops a pending product
func (sr *ServiceRegistry) RejectProductHandler(req *Request) (*Response, error) {
	id, err := int64Param(req, "id")
	if err != nil {
		return failure(err)
	}

	product, err := sr.workspace(req).Distributor.RejectProduct(id)
	if err != nil {
		return failure(err)
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"message": "Product rejected",
		"product": product,
	}), nil
}

// UpdateShipmentStatusHandler advances a shipment
func (sr *ServiceRegistry) UpdateShipmentStatusHandler(req *Request) (*Response, error) {
	id, err := int64Param(req, "id")
	if err != nil {
		return failure(err)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(req, &body); err != nil {
		return failure(err)
	}

	shipment, err := sr.workspace(req).Distributor.UpdateStatus(id, body.Status)
	if err != nil {
		return failure(err)
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"message":  "Shipment updated",
		"shipment": shipment,
	}), nil
}

func (sr *ServiceRegistry) adjustStock(req *Request, adjust func(*dashboard.RetailerStore, int64) (dashboard.RetailProduct, error)) (*Response, error) {
	id, err := int64Param(req, "id")
	if err != nil {
		return failure(err)
	}

	product, err := adjust(sr.workspace(req).Retailer, id)
	if err != nil {
		return failure(err)
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"product": product,
	}), nil
}

// IncrementStockHandler adds one unit to a retail product
func (sr *ServiceRegistry) IncrementStockHandler(req *Request) (*Response, error) {
	return sr.adjustStock(req, (*dashboard.RetailerStore).IncrementStock)
}

// DecrementStockHandler removes one unit from a retail product
func (sr *ServiceRegistry) DecrementStockHandler(req *Request) (*Response, error) {
	return sr.adjustStock(req, (*dashboard.RetailerStore).DecrementStock)
}

// PrintLabelHandler renders the QR label of a retail product as PNG
func (sr *ServiceRegistry) PrintLabelHandler(req *Request) (*Response, error) {
	id, err := int64Param(req, "id")
	if err != nil {
		return failure(err)
	}

	product, err := sr.workspace(req).Retailer.Product(id)
	if err != nil {
		return failure(err)
	}

	png, err := sr.services.Generator.Generate(product.QRPayload, labelSize(req))
	if err != nil {
		return failure(err)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":        "image/png",
			"Content-Disposition": fmt.Sprintf(`inline; filename="label-%s.png"`, product.BatchID),
		},
		Body: string(png),
	}, nil
}

// ConsumerScanHandler adds a scanned batch to the consumer's list
func (sr *ServiceRegistry) ConsumerScanHandler(req *Request) (*Response, error) {
	var body struct {
		Data string `json:"data"`
	}
	if err := decodeBody(req, &body); err != nil {
		return failure(err)
	}

	product, err := sr.workspace(req).Consumer.RecordScan(body.Data)
	if err != nil {
		return failure(err)
	}
	monitoring.ScansTotal.WithLabelValues(monitoring.SourceConsumer).Inc()

	return jsonResponse(http.StatusCreated, map[string]interface{}{
		"message": "Product scanned",
		"product": product,
	}), nil
}

// ApproveUserHandler approves a pending registration
func (sr *ServiceRegistry) ApproveUserHandler(req *Request) (*Response, error) {
	return sr.decideRegistration(req, "approved", sr.services.Admin.Approve)
}

// RejectUserHandler rejects a pending registration
func (sr *ServiceRegistry) RejectUserHandler(req *Request) (*Response, error) {
	return sr.decideRegistration(req, "rejected", sr.services.Admin.Reject)
}

func (sr *ServiceRegistry) decideRegistration(req *Request, outcome string, decide func(ctx context.Context, id uint) error) (*Response, error) {
	id, err := uintParam(req, "id")
	if err != nil {
		return failure(err)
	}
	if err := decide(req.Context(), id); err != nil {
		return failure(err)
	}
	sr.logger.Info("Registration decided", "registration_id", id, "outcome", outcome, "admin", req.Session.WalletAddress)

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Registration %d %s", id, outcome),
		"id":      id,
	}), nil
}
