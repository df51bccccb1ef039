package srvreg

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/monitoring"
	"github.com/agrichain/agrichain/qr"
)

// labelSize reads ?size= for PNG endpoints
func labelSize(req *Request) int {
	size, err := strconv.Atoi(req.Query["size"])
	if err != nil {
		return qr.DefaultSize
	}
	return size
}

// GenerateQRHandler renders text as a QR data URL
func (sr *ServiceRegistry) GenerateQRHandler(req *Request) (*Response, error) {
	var body struct {
		Data string `json:"data"`
		Size int    `json:"size"`
	}
	if err := decodeBody(req, &body); err != nil {
		return failure(err)
	}

	png, err := sr.services.Generator.Generate(body.Data, body.Size)
	if err != nil {
		return failure(err)
	}
	monitoring.QRCodesGenerated.Inc()

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"data":    body.Data,
		"size":    qr.ClampSize(body.Size),
		"dataUrl": qr.DataURL(png),
	}), nil
}

// PresetsHandler lists example payloads
func (sr *ServiceRegistry) PresetsHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"presets": qr.Presets(),
		"minSize": qr.MinSize,
		"maxSize": qr.MaxSize,
	}), nil
}

func (sr *ServiceRegistry) scanner(req *Request) *qr.Scanner {
	return sr.workspace(req).Scanner
}

// ScannerStartHandler opens the camera for the session's scanner
func (sr *ServiceRegistry) ScannerStartHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, sr.scanner(req).Start()), nil
}

// ScannerStopHandler releases the camera
func (sr *ServiceRegistry) ScannerStopHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, sr.scanner(req).Stop()), nil
}

// ScannerSimulateHandler records a mock scan
func (sr *ServiceRegistry) ScannerSimulateHandler(req *Request) (*Response, error) {
	record := sr.scanner(req).Simulate()
	monitoring.ScansTotal.WithLabelValues(monitoring.SourceSimulated).Inc()

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"result": record,
	}), nil
}

// ScannerFrameHandler decodes one base64 camera frame
func (sr *ServiceRegistry) ScannerFrameHandler(req *Request) (*Response, error) {
	var body struct {
		Image string `json:"image"`
	}
	if err := decodeBody(req, &body); err != nil {
		return failure(err)
	}

	// an undecodable payload is an unreadable frame
	frame, err := base64.StdEncoding.DecodeString(body.Image)
	if err != nil {
		frame = nil
	}

	record, err := sr.scanner(req).SubmitFrame(frame)
	if err != nil {
		return failure(err)
	}
	monitoring.ScansTotal.WithLabelValues(monitoring.SourceFrame).Inc()

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"result": record,
	}), nil
}

// ScannerHistoryHandler lists recent scans
func (sr *ServiceRegistry) ScannerHistoryHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"history": sr.scanner(req).History(),
		"limit":   qr.HistoryLimit,
	}), nil
}

// ClearScannerHistoryHandler forgets recent scans
func (sr *ServiceRegistry) ClearScannerHistoryHandler(req *Request) (*Response, error) {
	sr.scanner(req).ClearHistory()
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"history": []qr.Record{},
	}), nil
}

// TimelineHandler returns the traced journey of a batch
func (sr *ServiceRegistry) TimelineHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, dashboard.ProductTimeline(req.Params["batchId"])), nil
}
