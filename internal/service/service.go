package service

import (
	"go.uber.org/zap"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/config"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/jwt"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth     AuthService
	User     UserService
	Team     TeamService
	Telework TeleworkService
	TeamRule TeamRuleService
	Export   ExportService
	Calendar CalendarService
}

// NewService builds the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, logger),
		Team:     NewTeamService(repo, logger),
		Telework: NewTeleworkService(repo, logger),
		TeamRule: NewTeamRuleService(repo, logger),
		Export:   NewExportService(repo, logger),
		Calendar: NewCalendarService(repo, logger),
	}
}
