package controllers

import (
	"net/http"

	"github.com/greenbasket/farmmarket-backend/api/responses"
	"github.com/greenbasket/farmmarket-backend/api/validators"
	detectionsvc "github.com/greenbasket/farmmarket-backend/internal/detection"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	"github.com/greenbasket/farmmarket-backend/pkg/enums"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
)

// DetectDisease forwards an uploaded crop image to the inference service and
// returns the normalized prediction.
func DetectDisease(svc *detectionsvc.Service, uploadsCfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	maxMemory := int64(uploadsCfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := validators.FormFile(r, "image", maxMemory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()

		result, err := svc.Detect(r.Context(), file, header)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AIHealth probes the inference service. Unhealthy answers map to 502 and an
// unreachable service to 503 so callers can tell the two failure modes apart.
func AIHealth(svc *detectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := svc.Health(r.Context())

		httpStatus := http.StatusOK
		switch status {
		case enums.AIHealthUnhealthy:
			httpStatus = http.StatusBadGateway
		case enums.AIHealthUnavailable:
			httpStatus = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, httpStatus, map[string]string{"status": status.String()})
	}
}
