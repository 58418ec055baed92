package contracts

import (
	"context"

	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/dto/responses"
)

// DoctorRepository resolves a doctor's configured availability windows.
type DoctorRepository interface {
	FindAvailabilityByDoctorID(ctx context.Context, doctorID int64) (*models.DoctorAvailability, error)
}

// ScheduleUsecase computes bookable slots and their classification for a
// doctor and date.
type ScheduleUsecase interface {
	DoctorSlots(ctx context.Context, doctorID int64, date string) ([]responses.SlotInfo, error)
}
