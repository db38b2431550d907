package router

import (
	"bluffpot/internal/handlers"
	"bluffpot/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	roundHandler := handlers.NewRoundHandler()
	postHandler := handlers.NewPostHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()
	commentHandler := handlers.NewCommentHandler()
	reactionHandler := handlers.NewReactionHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.GET("/logout", authHandler.Logout)

	api.GET("/rounds", roundHandler.List)
	api.GET("/rounds/active", roundHandler.Active)
	api.GET("/rounds/date/:date", roundHandler.ByDate)
	api.GET("/rounds/date/:date/posts", roundHandler.Posts)

	api.GET("/feed", postHandler.Feed)
	api.GET("/p/:pid", postHandler.Detail)
	api.GET("/u/:username", userHandler.Profile)
	api.GET("/users/:id/posts", postHandler.ByAuthor)
	api.GET("/leaderboard", userHandler.Leaderboard)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", userHandler.Me)
		authorized.POST("/me/settings", userHandler.UpdateSettings)
		authorized.GET("/me/transactions", userHandler.Transactions)
		authorized.GET("/me/rank", userHandler.MyRank)
		authorized.POST("/me/daily-bonus", userHandler.DailyBonus)
		authorized.GET("/me/rounds/:roundId/post", postHandler.Mine)

		authorized.POST("/posts", postHandler.Create)
		authorized.POST("/posts/:id/votes", voteHandler.Place)
		authorized.GET("/posts/:id/votes", voteHandler.List)
		authorized.GET("/posts/:id/votes/mine", voteHandler.Mine)
		authorized.GET("/posts/:id/votes/count", voteHandler.Count)

		authorized.POST("/posts/:id/comments", commentHandler.Create)
		authorized.GET("/posts/:id/comments", commentHandler.List)
		authorized.DELETE("/comments/:cid", commentHandler.Delete)

		authorized.POST("/posts/:id/reactions", reactionHandler.Toggle)
		authorized.GET("/posts/:id/reactions", reactionHandler.List)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}

	// Maintenance routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/posts/:id/settle", adminHandler.SettlePost)
		admin.POST("/sweep", adminHandler.RunSweep)
		admin.POST("/rounds/ensure", adminHandler.EnsureRounds)
		admin.POST("/rounds/ensure-date/:date", adminHandler.EnsureRoundForDate)
		admin.POST("/rounds/seed-dev", adminHandler.SeedDevRound)
	}
}
