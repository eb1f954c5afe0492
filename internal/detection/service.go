package detection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/greenbasket/farmmarket-backend/pkg/enums"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/metrics"
	"github.com/greenbasket/farmmarket-backend/pkg/uploads"
)

// Inference is the outbound surface the service depends on.
type Inference interface {
	Predict(ctx context.Context, filename string, file io.Reader) (map[string]any, error)
	Health(ctx context.Context) (int, error)
}

// Service runs the detection flow: store the upload, forward it, normalize
// the answer, and always remove the stored file afterward.
type Service struct {
	client  Inference
	uploads *uploads.Store
	metrics *metrics.DetectionMetrics
}

// NewService builds the detection service. Metrics may be nil.
func NewService(client Inference, uploadStore *uploads.Store, m *metrics.DetectionMetrics) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("inference client required")
	}
	if uploadStore == nil {
		return nil, fmt.Errorf("upload store required")
	}
	return &Service{
		client:  client,
		uploads: uploadStore,
		metrics: m,
	}, nil
}

// Detect forwards the uploaded image to the inference service and returns
// the normalized prediction.
func (s *Service) Detect(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*Result, error) {
	path, err := s.uploads.Save(ctx, file, header)
	if err != nil {
		return nil, err
	}
	defer s.uploads.Remove(ctx, path)

	stored, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading stored upload")
	}
	defer stored.Close()

	start := time.Now()
	payload, err := s.client.Predict(ctx, header.Filename, stored)
	s.metrics.ObserveCall("predict", time.Since(start))
	if err != nil {
		s.metrics.IncResult(outcomeFor(err))
		return nil, err
	}

	result, err := Normalize(payload)
	if err != nil {
		if errors.Is(err, ErrNoPrediction) {
			s.metrics.IncResult("no_prediction")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no prediction for the uploaded image")
		}
		s.metrics.IncResult("error")
		return nil, err
	}

	s.metrics.IncResult("predicted")
	return result, nil
}

// Health maps the probe outcome onto the three health states.
func (s *Service) Health(ctx context.Context) enums.AIHealthStatus {
	status, err := s.client.Health(ctx)
	if err != nil {
		s.metrics.SetUpstreamUp("inference", false)
		return enums.AIHealthUnavailable
	}
	if status != http.StatusOK {
		s.metrics.SetUpstreamUp("inference", false)
		return enums.AIHealthUnhealthy
	}
	s.metrics.SetUpstreamUp("inference", true)
	return enums.AIHealthOK
}

func outcomeFor(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeUpstreamUnavailable:
		return "unavailable"
	case pkgerrors.CodeUpstreamUnhealthy:
		return "unhealthy"
	default:
		return "error"
	}
}
