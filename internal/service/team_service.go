package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
)

// ── team module business errors ──

var ErrTeamNotFound = errors.New("team not found")

// TeamService is the team business interface.
type TeamService interface {
	Create(ctx context.Context, req *dto.CreateTeamRequest, callerID string) (*dto.TeamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeamResponse, error)
	List(ctx context.Context) ([]dto.TeamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest, callerID string) (*dto.TeamResponse, error)
	Delete(ctx context.Context, id string) error
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService builds the TeamService.
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest, callerID string) (*dto.TeamResponse, error) {
	team := &model.Team{
		Name:        req.Name,
		Description: req.Description,
	}
	if callerID != "" {
		team.CreatedBy = &callerID
	}

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("creating team", zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("looking up team", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) List(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := s.repo.Team.List(ctx)
	if err != nil {
		s.logger.Error("listing teams", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, *toTeamResponse(&teams[i]))
	}
	return result, nil
}

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest, callerID string) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("looking up team", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	team.UpdatedBy = &callerID

	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("updating team", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Team.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if err := s.repo.Team.Delete(ctx, id); err != nil {
		s.logger.Error("deleting team", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toTeamResponse(team *model.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          team.TeamID,
		Name:        team.Name,
		Description: team.Description,
	}
}
