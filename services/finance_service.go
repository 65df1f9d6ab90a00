package services

import (
	"errors"

	"clubhouse/models"

	"gorm.io/gorm"
)

type FinanceService struct {
	db *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

type CreateRecordRequest struct {
	Kind        string  `json:"kind" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// FinancialSummary aggregates an event's money flow. RegistrationFees
// is computed on the fly from the entry fee and the registration count;
// it is never stored or reconciled against recorded income.
type FinancialSummary struct {
	EventID          uint    `json:"event_id"`
	ExpenseTotal     float64 `json:"expense_total"`
	IncomeTotal      float64 `json:"income_total"`
	RegistrationFees float64 `json:"registration_fees"`
	Net              float64 `json:"net"`
}

func (s *FinanceService) AddRecord(eventID uint, req *CreateRecordRequest) (*models.FinancialRecord, error) {
	if req.Kind != models.RecordExpense && req.Kind != models.RecordIncome {
		return nil, errors.New("kind must be expense or income")
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		return nil, errors.New("event not found")
	}

	record := models.FinancialRecord{
		EventID:     eventID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *FinanceService) ListRecords(eventID uint) ([]models.FinancialRecord, error) {
	var records []models.FinancialRecord
	err := s.db.Where("event_id = ?", eventID).
		Order("created_at DESC").Find(&records).Error
	return records, err
}

func (s *FinanceService) DeleteRecord(eventID, recordID uint) error {
	result := s.db.Where("event_id = ?", eventID).
		Delete(&models.FinancialRecord{}, recordID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}

func (s *FinanceService) Summary(eventID uint) (*FinancialSummary, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		return nil, errors.New("event not found")
	}

	records, err := s.ListRecords(eventID)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{EventID: eventID}
	for _, r := range records {
		switch r.Kind {
		case models.RecordExpense:
			summary.ExpenseTotal += r.Amount
		case models.RecordIncome:
			summary.IncomeTotal += r.Amount
		}
	}

	var regCount int64
	if err := s.db.Model(&models.Registration{}).
		Where("event_id = ?", eventID).Count(&regCount).Error; err != nil {
		return nil, err
	}
	summary.RegistrationFees = event.EntryFee * float64(regCount)
	summary.Net = summary.IncomeTotal + summary.RegistrationFees - summary.ExpenseTotal
	return summary, nil
}
