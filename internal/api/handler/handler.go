package handler

import "github.com/ElegAlex/Orchestr-a-docker-sub001/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Team     *TeamHandler
	Telework *TeleworkHandler
	TeamRule *TeamRuleHandler
	Export   *ExportHandler
}

// NewHandler builds the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, svc.User),
		User:     NewUserHandler(svc.User),
		Team:     NewTeamHandler(svc.Team),
		Telework: NewTeleworkHandler(svc.Telework),
		TeamRule: NewTeamRuleHandler(svc.TeamRule),
		Export:   NewExportHandler(svc.Export, svc.Calendar),
	}
}
