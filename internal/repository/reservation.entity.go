package repository

import (
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
)

type ReservationEntity struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	CustomerName string    `gorm:"column:customer_name;not null"`
	Phone        string    `gorm:"column:phone;not null"`
	TableNumber  int       `gorm:"column:table_number;not null"`
	Guests       int       `gorm:"column:guests;not null"`
	Date         time.Time `gorm:"column:date;not null;index:reservations_by_date"`
	Status       string    `gorm:"column:status;not null"`
}

func (ReservationEntity) TableName() string {
	return "reservations"
}

func toReservationEntity(m *model.Reservation) *ReservationEntity {
	if m == nil {
		return nil
	}
	return &ReservationEntity{
		ID:           m.ID,
		CustomerName: m.CustomerName,
		Phone:        m.Phone,
		TableNumber:  m.TableNumber,
		Guests:       m.Guests,
		Date:         m.Date.UTC(),
		Status:       string(m.Status),
	}
}

func toReservationModel(e *ReservationEntity) *model.Reservation {
	if e == nil {
		return nil
	}
	return &model.Reservation{
		ID:           e.ID,
		CustomerName: e.CustomerName,
		Phone:        e.Phone,
		TableNumber:  e.TableNumber,
		Guests:       e.Guests,
		Date:         e.Date.UTC(),
		Status:       model.ReservationStatus(e.Status),
	}
}

func toReservationModels(entities []*ReservationEntity) []*model.Reservation {
	models := make([]*model.Reservation, len(entities))
	for i, e := range entities {
		models[i] = toReservationModel(e)
	}
	return models
}
