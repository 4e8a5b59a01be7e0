package repository

import "github.com/yogapratama/leasedrive/internal/domain/entity"

// VehicleRepository defines persistence for vehicle listings.
type VehicleRepository interface {
	Create(v *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	ListByDealer(dealerID string, limit, offset int) ([]*entity.Vehicle, error)
	Update(v *entity.Vehicle) error
	Delete(id string) error
}
