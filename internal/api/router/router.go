package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/config"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/api/handler"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/api/middleware"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/jwt"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup wires middleware and routes onto a gin engine.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public auth endpoints, rate limited to slow credential stuffing.
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.Me)
		authorized.PUT("/auth/password", h.Auth.ChangePassword)

		// ── users ──
		users := authorized.Group("/users")
		{
			users.GET("/:id", h.User.GetUser)
			users.PUT("/:id", h.User.UpdateUser)

			admin := users.Group("")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("", h.User.CreateUser)
				admin.GET("", h.User.ListUsers)
				admin.DELETE("/:id", h.User.DeleteUser)
			}
		}

		// ── teams ──
		teams := authorized.Group("/teams")
		{
			teams.GET("", h.Team.ListTeams)
			teams.GET("/:id", h.Team.GetTeam)

			admin := teams.Group("")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("", h.Team.CreateTeam)
				admin.PUT("/:id", h.Team.UpdateTeam)
				admin.DELETE("/:id", h.Team.DeleteTeam)
			}
		}

		// ── telework ──
		telework := authorized.Group("/telework")
		{
			profiles := telework.Group("/profiles")
			{
				profiles.GET("/:userId", h.Telework.GetProfile)
				profiles.POST("", h.Telework.CreateProfile)
				profiles.PUT("/:userId", h.Telework.UpdateProfile)
			}

			overrides := telework.Group("/overrides")
			{
				overrides.POST("", h.Telework.RequestOverride)
				overrides.POST("/validate", h.Telework.Validate)
				overrides.GET("", h.Telework.ListOverrides)
				overrides.GET("/user/:userId", h.Telework.ListUserOverrides)
				overrides.DELETE("/:id", h.Telework.DeleteOverride)

				approvers := overrides.Group("")
				approvers.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleResponsable))
				{
					approvers.GET("/pending", h.Telework.ListPendingOverrides)
					approvers.PUT("/:id/approve", h.Telework.ApproveOverride)
					approvers.PUT("/:id/reject", h.Telework.RejectOverride)
				}

				admin := overrides.Group("")
				admin.Use(middleware.RoleAuth(model.RoleAdmin))
				{
					admin.POST("/cleanup", h.Telework.CleanupExpired)
				}
			}

			rules := telework.Group("/rules")
			{
				rules.GET("", h.TeamRule.ListRules)
				rules.GET("/:id", h.TeamRule.GetRule)

				admin := rules.Group("")
				admin.Use(middleware.RoleAuth(model.RoleAdmin))
				{
					admin.POST("", h.TeamRule.CreateRule)
					admin.PUT("/:id", h.TeamRule.UpdateRule)
					admin.DELETE("/:id", h.TeamRule.DeleteRule)
				}
			}
		}

		// ── exports ──
		export := authorized.Group("/export")
		{
			export.GET("/calendar/:userId", h.Export.UserCalendar)

			managers := export.Group("")
			managers.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleResponsable))
			{
				managers.GET("/presence", h.Export.WeeklyReport)
			}
		}
	}

	return r
}
