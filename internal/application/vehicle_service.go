package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	"github.com/yogapratama/leasedrive/pkg/apperr"
	"github.com/yogapratama/leasedrive/pkg/helpers"
)

// ErrNotOwner is returned when a dealer touches a listing they do not own.
var ErrNotOwner = errors.New("not the listing owner")

// VehicleService manages vehicle listings: CRUD on Postgres, photos on GCS,
// full-text search on Elasticsearch.
type VehicleService struct {
	Repo      repo.VehicleRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewVehicleService(r repo.VehicleRepository, gcs *storage.Client, bucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *VehicleService {
	return &VehicleService{Repo: r, GCS: gcs, GCSBucket: bucket, ES: es, ESIndex: esIndex, Logger: logger}
}

type VehicleInput struct {
	Make         string
	Model        string
	Year         int
	PricePerDay  int64
	Transmission string
	Fuel         string
	Seats        int
	City         string
}

func (in VehicleInput) validate() error {
	fields := map[string]string{}
	if in.Make == "" {
		fields["make"] = "is required"
	}
	if in.Model == "" {
		fields["model"] = "is required"
	}
	if in.Year < 1950 || in.Year > time.Now().Year()+1 {
		fields["year"] = "out of range"
	}
	if in.PricePerDay <= 0 {
		fields["price_per_day"] = "must be positive"
	}
	if in.Seats <= 0 || in.Seats > 12 {
		fields["seats"] = "out of range"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (s *VehicleService) Create(ctx context.Context, dealerID string, in VehicleInput) (*entity.Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v := &entity.Vehicle{
		DealerID:     dealerID,
		Make:         in.Make,
		Model:        in.Model,
		Year:         in.Year,
		PricePerDay:  in.PricePerDay,
		Transmission: in.Transmission,
		Fuel:         in.Fuel,
		Seats:        in.Seats,
		City:         in.City,
	}
	if err := s.Repo.Create(v); err != nil {
		return nil, err
	}
	_ = s.index(ctx, v)
	return v, nil
}

func (s *VehicleService) Get(id string) (*entity.Vehicle, error) {
	return s.Repo.GetByID(id)
}

func (s *VehicleService) ListByDealer(dealerID string, limit, offset int) ([]*entity.Vehicle, error) {
	return s.Repo.ListByDealer(dealerID, limit, offset)
}

func (s *VehicleService) Update(ctx context.Context, dealerID, vehicleID string, in VehicleInput) (*entity.Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v, err := s.owned(dealerID, vehicleID)
	if err != nil {
		return nil, err
	}
	v.Make, v.Model, v.Year = in.Make, in.Model, in.Year
	v.PricePerDay, v.Transmission, v.Fuel = in.PricePerDay, in.Transmission, in.Fuel
	v.Seats, v.City = in.Seats, in.City
	if err := s.Repo.Update(v); err != nil {
		return nil, err
	}
	_ = s.index(ctx, v)
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, dealerID, vehicleID string) error {
	if _, err := s.owned(dealerID, vehicleID); err != nil {
		return err
	}
	if err := s.Repo.Delete(vehicleID); err != nil {
		return err
	}
	s.deleteIndex(ctx, vehicleID)
	return nil
}

// UploadPhoto streams a listing photo to GCS and appends its public URL.
func (s *VehicleService) UploadPhoto(ctx context.Context, dealerID, vehicleID string, r io.Reader, filename, contentType string) (string, error) {
	v, err := s.owned(dealerID, vehicleID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("vehicles", vehicleID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	v.PhotoURLs = append(v.PhotoURLs, url)
	if err := s.Repo.Update(v); err != nil {
		return "", err
	}
	_ = s.index(ctx, v)
	return url, nil
}

func (s *VehicleService) owned(dealerID, vehicleID string) (*entity.Vehicle, error) {
	v, err := s.Repo.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if v.DealerID != dealerID {
		return nil, ErrNotOwner
	}
	return v, nil
}

func (s *VehicleService) index(ctx context.Context, v *entity.Vehicle) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":            v.ID,
		"dealer_id":     v.DealerID,
		"make":          v.Make,
		"model":         v.Model,
		"year":          v.Year,
		"price_per_day": v.PricePerDay,
		"transmission":  v.Transmission,
		"fuel":          v.Fuel,
		"city":          v.City,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: v.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("vehicle_id", v.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("vehicle_id", v.ID).Warn("es index response error")
	}
	return nil
}

func (s *VehicleService) deleteIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// Search performs a multi_match query over make, model, and city.
func (s *VehicleService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"make^2", "model^2", "city"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
