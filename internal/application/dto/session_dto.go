package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// LoadSessionResponse representación HTTP de una sesión de carga.
type LoadSessionResponse struct {
	ID                string          `json:"id"`
	DriverUID         string          `json:"driver_uid"`
	DriverName        string          `json:"driver_name"`
	BranchID          string          `json:"branch_id,omitempty"`
	OilTypeID         string          `json:"oil_type_id"`
	OilTypeName       string          `json:"oil_type_name"`
	TotalLoadedLiters decimal.Decimal `json:"total_loaded_liters"`
	RemainingLiters   decimal.Decimal `json:"remaining_liters"`
	LoadCount         int             `json:"load_count"`
	Status            string          `json:"status"`
	Overdrawn         bool            `json:"overdrawn"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToLoadSessionResponse mapea la entidad a la respuesta HTTP.
func ToLoadSessionResponse(s *entity.LoadSession) LoadSessionResponse {
	return LoadSessionResponse{
		ID:                s.ID,
		DriverUID:         s.DriverUID,
		DriverName:        s.DriverName,
		BranchID:          s.BranchID,
		OilTypeID:         s.OilTypeID,
		OilTypeName:       s.OilTypeName,
		TotalLoadedLiters: s.TotalLoadedLiters,
		RemainingLiters:   s.RemainingLiters,
		LoadCount:         s.LoadCount,
		Status:            s.Status,
		Overdrawn:         s.Overdrawn(),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// BranchRequest body para crear sucursales.
type BranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// OilTypeRequest body para crear tipos de aceite.
type OilTypeRequest struct {
	Name string `json:"name"`
}
