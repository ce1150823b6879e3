package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/api/handlers"
	"github.com/campushire/campushire/internal/api/middleware"
)

type Deps struct {
	Auth          *handlers.AuthHandler
	Student       *handlers.StudentHandler
	Session       *handlers.SessionHandler
	Question      *handlers.QuestionHandler
	Interview     *handlers.InterviewHandler
	Consolidation *handlers.ConsolidationHandler
	Activity      *handlers.ActivityHandler
	Email         *handlers.EmailHandler
	Audit         *handlers.AuditHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Token exchange sits outside JWT auth; the gateway key check lives in
	// the handler.
	r.POST("/auth/token", d.Auth.Token)
	r.POST("/auth/refresh", d.Auth.Refresh)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	frontdesk := middleware.RequireRole("frontdesk", "admin")
	admin := middleware.RequireAdmin()

	auth.POST("/students", frontdesk, d.Student.Register)
	auth.GET("/students", d.Student.List)
	auth.GET("/students/:id", d.Student.Get)
	auth.GET("/students/:id/interviews", d.Interview.ListByStudent)
	auth.GET("/students/:id/activity", d.Activity.ListByStudent)

	auth.POST("/sessions", admin, d.Session.Create)
	auth.GET("/sessions", d.Session.List)
	auth.PATCH("/sessions/:id/status", admin, d.Session.SetStatus)

	auth.POST("/questions", admin, d.Question.Create)
	auth.GET("/questions", d.Question.List)

	auth.POST("/interviews", d.Interview.Start)
	auth.GET("/interviews/:id", d.Interview.Get)
	auth.POST("/interviews/:id/answers", d.Interview.AddAnswer)
	auth.GET("/interviews/:id/answers", d.Interview.ListAnswers)
	auth.POST("/interviews/:id/complete", d.Interview.Complete)
	auth.POST("/interviews/:id/cancel", d.Interview.Cancel)
	auth.PATCH("/interviews/:id/verdict", d.Interview.SetVerdict)

	auth.POST("/consolidation/recompute", admin, d.Consolidation.Recompute)
	auth.GET("/consolidation", d.Consolidation.Board)
	auth.GET("/consolidation/:student_id/:session_id", d.Consolidation.Get)

	auth.POST("/activity/backfill", admin, d.Consolidation.Backfill)

	auth.POST("/emails", admin, d.Email.Record)
	auth.GET("/emails", d.Email.ListByConsolidation)

	auth.GET("/audit", admin, d.Audit.ListByActor)
}
