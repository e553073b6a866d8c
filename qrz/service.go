package qrz

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Station-Manager/config"
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/logging"
	"github.com/Station-Manager/types"
	"github.com/Station-Manager/utils"

	"github.com/Station-Manager/logbook/adif"
)

const (
	ServiceName = "qrzlogbook"

	// fetchPageSize is the page size used by FetchAllQsos. Larger pages
	// risk server-side timeouts.
	fetchPageSize = 250
)

type Service struct {
	ConfigService *config.Service  `di.inject:"configservice"`
	LoggerService *logging.Service `di.inject:"loggingservice"`
	Config        *types.LookupConfig
	client        *http.Client

	isInitialized atomic.Bool
	initOnce      sync.Once
}

// NewService constructs a logbook service with the given shared services.
// cfg may be nil when lookupCfg is supplied directly.
func NewService(logger *logging.Service, cfg *config.Service, lookupCfg *types.LookupConfig) *Service {
	return &Service{
		LoggerService: logger,
		ConfigService: cfg,
		Config:        lookupCfg,
	}
}

// Initialize initializes the Service instance by setting up required dependencies and configurations.
func (s *Service) Initialize() error {
	const op errors.Op = "qrz.Service.Initialize"
	if s.isInitialized.Load() {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		if s.LoggerService == nil {
			initErr = errors.New(op).Msg("logger service has not been set/injected")
			return
		}

		if s.Config == nil {
			if s.ConfigService == nil {
				initErr = errors.New(op).Msg("application config has not been set/injected")
				return
			}

			cfg, err := s.ConfigService.LookupServiceConfig(ServiceName)
			if err != nil {
				initErr = errors.New(op).Err(err).Msg("getting logbook service config")
				return
			}
			s.Config = &cfg
		}

		if err := s.validateConfig(op); err != nil {
			initErr = err
			return
		}

		if s.client == nil {
			if s.Config.Enabled {
				s.client = utils.NewHTTPClient(s.Config.HttpTimeoutSec * time.Second)
			} else {
				s.LoggerService.InfoWith().Msg("QRZ.com logbook access is disabled in the config")
			}
		}

		s.isInitialized.Store(true)
	})

	return initErr
}

// InsertQso inserts a single QSO record into the logbook using the
// default context. When replace is true, an existing duplicate QSO is
// replaced instead of rejected.
func (s *Service) InsertQso(qso adif.QsoRecord, replace bool) (InsertResponse, error) {
	return s.InsertQsoWithContext(context.Background(), qso, replace)
}

// InsertQsoWithContext inserts a single QSO record into the logbook.
// The record is encoded to ADIF and sent as an INSERT action; the
// server-assigned logid comes back in the response.
func (s *Service) InsertQsoWithContext(ctx context.Context, qso adif.QsoRecord, replace bool) (InsertResponse, error) {
	const op errors.Op = "qrz.Service.InsertQsoWithContext"

	if err := s.ready(op); err != nil {
		return InsertResponse{}, err
	}
	if !s.Config.Enabled {
		s.LoggerService.InfoWith().Msg("QRZ.com logbook access is disabled in the config")
		return InsertResponse{}, nil
	}

	params := url.Values{}
	params.Set("KEY", s.Config.Password)
	params.Set("ACTION", "INSERT")
	params.Set("ADIF", adif.Encode(qso))
	if replace {
		params.Set("OPTION", "REPLACE")
	}

	body, err := s.makeRequest(ctx, params)
	if err != nil {
		return InsertResponse{}, err
	}

	return s.parseInsertResponse(body)
}

// DeleteQsos deletes the given logids from the logbook using the default
// context.
func (s *Service) DeleteQsos(logids []uint64) (DeleteResponse, error) {
	return s.DeleteQsosWithContext(context.Background(), logids)
}

// DeleteQsosWithContext deletes the given logids from the logbook.
// Logids the server did not find are reported in the response rather
// than failing the call.
func (s *Service) DeleteQsosWithContext(ctx context.Context, logids []uint64) (DeleteResponse, error) {
	const op errors.Op = "qrz.Service.DeleteQsosWithContext"

	if err := s.ready(op); err != nil {
		return DeleteResponse{}, err
	}
	if len(logids) == 0 {
		return DeleteResponse{}, errors.New(op).Msg("no logids provided")
	}
	if !s.Config.Enabled {
		s.LoggerService.InfoWith().Msg("QRZ.com logbook access is disabled in the config")
		return DeleteResponse{}, nil
	}

	params := url.Values{}
	params.Set("KEY", s.Config.Password)
	params.Set("ACTION", "DELETE")
	params.Set("LOGIDS", joinLogids(logids))

	body, err := s.makeRequest(ctx, params)
	if err != nil {
		return DeleteResponse{}, err
	}

	return s.parseDeleteResponse(body)
}

// Status retrieves logbook status information using the default context.
func (s *Service) Status() (StatusResponse, error) {
	return s.StatusWithContext(context.Background())
}

// StatusWithContext retrieves the logbook's status key/value data, such
// as the book name, owner and confirmed-contact counts.
func (s *Service) StatusWithContext(ctx context.Context) (StatusResponse, error) {
	const op errors.Op = "qrz.Service.StatusWithContext"

	if err := s.ready(op); err != nil {
		return StatusResponse{}, err
	}
	if !s.Config.Enabled {
		s.LoggerService.InfoWith().Msg("QRZ.com logbook access is disabled in the config")
		return StatusResponse{}, nil
	}

	params := url.Values{}
	params.Set("KEY", s.Config.Password)
	params.Set("ACTION", "STATUS")

	body, err := s.makeRequest(ctx, params)
	if err != nil {
		return StatusResponse{}, err
	}

	return s.parseStatusResponse(body)
}

// FetchQsos fetches QSO records matching the given options using the
// default context.
func (s *Service) FetchQsos(options FetchOptions) (FetchResponse, error) {
	return s.FetchQsosWithContext(context.Background(), options)
}

// FetchQsosWithContext fetches QSO records matching the given options.
// The ADIF payload of the response is decoded into records.
func (s *Service) FetchQsosWithContext(ctx context.Context, options FetchOptions) (FetchResponse, error) {
	const op errors.Op = "qrz.Service.FetchQsosWithContext"

	if err := s.ready(op); err != nil {
		return FetchResponse{}, err
	}
	if !s.Config.Enabled {
		s.LoggerService.InfoWith().Msg("QRZ.com logbook access is disabled in the config")
		return FetchResponse{}, nil
	}

	params := url.Values{}
	params.Set("KEY", s.Config.Password)
	params.Set("ACTION", "FETCH")
	if option := options.optionValue(); option != "" {
		params.Set("OPTION", option)
	}

	body, err := s.makeRequest(ctx, params)
	if err != nil {
		return FetchResponse{}, err
	}

	return s.parseFetchResponse(body)
}

// FetchAllQsos fetches every QSO record matching the given options using
// the default context.
func (s *Service) FetchAllQsos(options FetchOptions) ([]adif.QsoRecord, error) {
	return s.FetchAllQsosWithContext(context.Background(), options)
}

// FetchAllQsosWithContext fetches QSO records matching the given options
// with automatic paging. Records are requested in pages of 250 via the
// MAX/AFTERLOGID options; fetching stops on an empty or short page. The
// Max and AfterLogid fields of options are overridden for paging.
func (s *Service) FetchAllQsosWithContext(ctx context.Context, options FetchOptions) ([]adif.QsoRecord, error) {
	var (
		all        []adif.QsoRecord
		afterLogid uint64
	)

	for {
		page := options
		page.Max = fetchPageSize
		page.AfterLogid = afterLogid

		response, err := s.FetchQsosWithContext(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(response.Qsos) == 0 {
			break
		}

		// The next page starts past the highest logid seen so far.
		for _, logid := range response.Logids {
			if logid >= afterLogid {
				afterLogid = logid + 1
			}
		}

		all = append(all, response.Qsos...)

		if len(response.Qsos) < fetchPageSize {
			break
		}
	}

	return all, nil
}

func (s *Service) ready(op errors.Op) error {
	if !s.isInitialized.Load() {
		return errors.New(op).Msg("service is not initialized")
	}
	if s.Config == nil {
		return errors.New(op).Msg("service config is not set")
	}
	if s.Config.Enabled && s.client == nil {
		return errors.New(op).Msg("http client is not configured")
	}
	return nil
}
