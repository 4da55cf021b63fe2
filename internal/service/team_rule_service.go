package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
)

// ── team rule module business errors ──

var (
	ErrTeamRuleNotFound   = errors.New("team telework rule not found")
	ErrInvalidRecurrence  = errors.New("invalid recurrence descriptor")
	ErrTeamRuleUnknownRef = errors.New("referenced team does not exist")
)

// TeamRuleService manages recurring team telework constraints.
type TeamRuleService interface {
	Create(ctx context.Context, req *dto.CreateTeamRuleRequest, callerID string) (*dto.TeamRuleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeamRuleResponse, error)
	List(ctx context.Context, teamID string) ([]dto.TeamRuleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRuleRequest, callerID string) (*dto.TeamRuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type teamRuleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamRuleService builds the TeamRuleService.
func NewTeamRuleService(repo *repository.Repository, logger *zap.Logger) TeamRuleService {
	return &teamRuleService{repo: repo, logger: logger}
}

func (s *teamRuleService) Create(ctx context.Context, req *dto.CreateTeamRuleRequest, callerID string) (*dto.TeamRuleResponse, error) {
	recurrence, err := toRecurrence(&req.Recurrence)
	if err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		if _, err := s.repo.Team.GetByID(ctx, *req.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeamRuleUnknownRef
			}
			return nil, err
		}
	}

	rule := &model.TeamTeleworkRule{
		Name:            req.Name,
		Description:     req.Description,
		TeamID:          req.TeamID,
		AffectedUserIDs: model.StringArray(req.AffectedUserIDs),
		Exemptions:      model.StringArray(req.Exemptions),
		RequiredMode:    req.RequiredMode,
		Recurrence:      *recurrence,
		IsActive:        true,
	}
	if rule.Exemptions == nil {
		rule.Exemptions = model.StringArray{}
	}
	if callerID != "" {
		rule.CreatedBy = &callerID
	}

	if err := s.repo.TeamRule.Create(ctx, rule); err != nil {
		s.logger.Error("creating team rule", zap.Error(err))
		return nil, err
	}
	return toTeamRuleResponse(rule), nil
}

func (s *teamRuleService) GetByID(ctx context.Context, id string) (*dto.TeamRuleResponse, error) {
	rule, err := s.getRule(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTeamRuleResponse(rule), nil
}

func (s *teamRuleService) List(ctx context.Context, teamID string) ([]dto.TeamRuleResponse, error) {
	rules, err := s.repo.TeamRule.List(ctx, teamID)
	if err != nil {
		s.logger.Error("listing team rules", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeamRuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *toTeamRuleResponse(&rules[i]))
	}
	return result, nil
}

func (s *teamRuleService) Update(ctx context.Context, id string, req *dto.UpdateTeamRuleRequest, callerID string) (*dto.TeamRuleResponse, error) {
	rule, err := s.getRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.AffectedUserIDs != nil {
		rule.AffectedUserIDs = model.StringArray(*req.AffectedUserIDs)
	}
	if req.Exemptions != nil {
		rule.Exemptions = model.StringArray(*req.Exemptions)
	}
	if req.RequiredMode != nil {
		rule.RequiredMode = *req.RequiredMode
	}
	if req.Recurrence != nil {
		recurrence, err := toRecurrence(req.Recurrence)
		if err != nil {
			return nil, err
		}
		rule.Recurrence = *recurrence
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.UpdatedBy = &callerID

	if err := s.repo.TeamRule.Update(ctx, rule); err != nil {
		s.logger.Error("updating team rule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeamRuleResponse(rule), nil
}

func (s *teamRuleService) Delete(ctx context.Context, id string) error {
	if _, err := s.getRule(ctx, id); err != nil {
		return err
	}
	if err := s.repo.TeamRule.Delete(ctx, id); err != nil {
		s.logger.Error("deleting team rule", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *teamRuleService) getRule(ctx context.Context, id string) (*model.TeamTeleworkRule, error) {
	rule, err := s.repo.TeamRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamRuleNotFound
		}
		s.logger.Error("looking up team rule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return rule, nil
}

// toRecurrence converts and validates the recurrence payload.
func toRecurrence(payload *dto.RecurrencePayload) (*model.Recurrence, error) {
	switch payload.Type {
	case model.RecurrenceWeekly:
		if payload.DayOfWeek == nil {
			return nil, ErrInvalidRecurrence
		}
		return &model.Recurrence{
			Type:          model.RecurrenceWeekly,
			WeeklyPattern: &model.WeeklyRecurrence{DayOfWeek: *payload.DayOfWeek},
		}, nil
	case model.RecurrenceSpecificDates:
		if len(payload.SpecificDates) == 0 {
			return nil, ErrInvalidRecurrence
		}
		for _, d := range payload.SpecificDates {
			if _, err := time.Parse(dateLayout, d); err != nil {
				return nil, ErrInvalidRecurrence
			}
		}
		return &model.Recurrence{
			Type:          model.RecurrenceSpecificDates,
			SpecificDates: payload.SpecificDates,
		}, nil
	default:
		return nil, ErrInvalidRecurrence
	}
}

func toTeamRuleResponse(rule *model.TeamTeleworkRule) *dto.TeamRuleResponse {
	resp := &dto.TeamRuleResponse{
		ID:              rule.RuleID,
		Name:            rule.Name,
		Description:     rule.Description,
		AffectedUserIDs: []string(rule.AffectedUserIDs),
		Exemptions:      []string(rule.Exemptions),
		RequiredMode:    rule.RequiredMode,
		IsActive:        rule.IsActive,
		CreatedAt:       rule.CreatedAt.Format(timestampLayout),
		UpdatedAt:       rule.UpdatedAt.Format(timestampLayout),
	}
	if rule.TeamID != nil {
		resp.TeamID = *rule.TeamID
	}
	resp.Recurrence.Type = rule.Recurrence.Type
	if rule.Recurrence.WeeklyPattern != nil {
		day := rule.Recurrence.WeeklyPattern.DayOfWeek
		resp.Recurrence.DayOfWeek = &day
	}
	resp.Recurrence.SpecificDates = rule.Recurrence.SpecificDates
	return resp
}
