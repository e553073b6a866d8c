package logbook

import (
	"context"

	"github.com/Station-Manager/config"
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/logging"
	"github.com/goccy/go-json"

	"github.com/Station-Manager/logbook/adif"
	"github.com/Station-Manager/logbook/qrz"
)

// Provider defines the behavior a logbook provider must implement.
type Provider interface {
	Initialize() error
	InsertQso(qso adif.QsoRecord, replace bool) (qrz.InsertResponse, error)
	InsertQsoWithContext(ctx context.Context, qso adif.QsoRecord, replace bool) (qrz.InsertResponse, error)
	DeleteQsos(logids []uint64) (qrz.DeleteResponse, error)
	DeleteQsosWithContext(ctx context.Context, logids []uint64) (qrz.DeleteResponse, error)
	Status() (qrz.StatusResponse, error)
	StatusWithContext(ctx context.Context) (qrz.StatusResponse, error)
	FetchQsos(options qrz.FetchOptions) (qrz.FetchResponse, error)
	FetchQsosWithContext(ctx context.Context, options qrz.FetchOptions) (qrz.FetchResponse, error)
	FetchAllQsos(options qrz.FetchOptions) ([]adif.QsoRecord, error)
	FetchAllQsosWithContext(ctx context.Context, options qrz.FetchOptions) ([]adif.QsoRecord, error)
}

// ServiceFactory creates logbook providers by name. It can be extended to
// return other providers (e.g., Club Log, eQSL) as they are implemented.
type ServiceFactory struct {
	logger *logging.Service
	config *config.Service
}

// NewServiceFactory constructs a factory capable of returning logbook providers backed by
// the shared logger and config services.
func NewServiceFactory(logger *logging.Service, cfg *config.Service) *ServiceFactory {
	return &ServiceFactory{logger: logger, config: cfg}
}

// NewProvider creates a logbook provider with the given service name.
func (f *ServiceFactory) NewProvider(name string) (Provider, error) {
	switch name {
	case qrz.ServiceName:
		return qrz.NewService(f.logger, f.config, nil), nil
	default:
		return nil, errors.New("logbook.ServiceFactory.NewProvider").Msgf("unsupported logbook provider %q", name)
	}
}

// MustProvider returns a provider or panics.
func (f *ServiceFactory) MustProvider(name string) Provider {
	p, err := f.NewProvider(name)
	if err != nil {
		panic(err)
	}
	return p
}

// ExportJSON renders QSO records as JSON for callers that exchange logs
// outside the ADIF wire format.
func ExportJSON(qsos []adif.QsoRecord) ([]byte, error) {
	const op errors.Op = "logbook.ExportJSON"

	data, err := json.Marshal(qsos)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg("marshalling QSO records")
	}
	return data, nil
}

// ImportJSON parses QSO records previously rendered by ExportJSON.
func ImportJSON(data []byte) ([]adif.QsoRecord, error) {
	const op errors.Op = "logbook.ImportJSON"

	var qsos []adif.QsoRecord
	if err := json.Unmarshal(data, &qsos); err != nil {
		return nil, errors.New(op).Err(err).Msg("unmarshalling QSO records")
	}
	return qsos, nil
}
