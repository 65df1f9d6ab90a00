package services

import (
	"errors"

	"clubhouse/logger"
	"clubhouse/models"
	"clubhouse/roster"

	"gorm.io/gorm"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

type CreateMemberRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	BaseHandicap   float64 `json:"base_handicap"`
	MembershipType string  `json:"membership_type"`
}

type UpdateMemberRequest struct {
	Name           string   `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	BaseHandicap   *float64 `json:"base_handicap"`
	MembershipType string   `json:"membership_type"`
}

type ImportRosterRequest struct {
	Text string `json:"text" binding:"required"`
}

func validMembershipType(t string) bool {
	switch t {
	case models.MembershipActive, models.MembershipInactive, models.MembershipGuest:
		return true
	}
	return false
}

func (s *MemberService) CreateMember(req *CreateMemberRequest) (*models.Member, error) {
	membershipType := req.MembershipType
	if membershipType == "" {
		membershipType = models.MembershipActive
	}
	if !validMembershipType(membershipType) {
		return nil, errors.New("invalid membership type")
	}

	member := models.Member{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		BaseHandicap:   req.BaseHandicap,
		MembershipType: membershipType,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) GetMember(memberID uint) (*models.Member, error) {
	var member models.Member
	err := s.db.First(&member, memberID).Error
	return &member, err
}

func (s *MemberService) ListMembers(membershipType string) ([]models.Member, error) {
	var members []models.Member
	query := s.db.Order("name")
	if membershipType != "" {
		if !validMembershipType(membershipType) {
			return nil, errors.New("invalid membership type")
		}
		query = query.Where("membership_type = ?", membershipType)
	}
	err := query.Find(&members).Error
	return members, err
}

func (s *MemberService) UpdateMember(memberID uint, req *UpdateMemberRequest) (*models.Member, error) {
	member, err := s.GetMember(memberID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.BaseHandicap != nil {
		member.BaseHandicap = *req.BaseHandicap
	}
	if req.MembershipType != "" {
		if !validMembershipType(req.MembershipType) {
			return nil, errors.New("invalid membership type")
		}
		member.MembershipType = req.MembershipType
	}

	if err := s.db.Save(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember soft-deletes only, so historical scores and
// registrations keep a valid reference.
func (s *MemberService) DeleteMember(memberID uint) error {
	if _, err := s.GetMember(memberID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Member{}, memberID).Error; err != nil {
		return err
	}
	logger.WithMember(memberID).Info("member retired")
	return nil
}

// ImportRoster parses pasted free-text roster lines and creates one
// member per line in a single transaction.
func (s *MemberService) ImportRoster(req *ImportRosterRequest) ([]models.Member, error) {
	parsed := roster.Parse(req.Text)
	if len(parsed) == 0 {
		return nil, errors.New("no members found in import text")
	}

	members := make([]models.Member, len(parsed))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, p := range parsed {
			members[i] = models.Member{
				Name:           p.Name,
				BaseHandicap:   p.Handicap,
				MembershipType: models.MembershipActive,
			}
			if err := tx.Create(&members[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
