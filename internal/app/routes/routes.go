package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/controllers"
	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/app/services"
	"github.com/yigit/librarium/internal/middleware"
)

// Controllers groups every controller mounted by SetupRouter
type Controllers struct {
	Auth              *controllers.AuthController
	Console           *controllers.ConsoleController
	Relations         *controllers.RelationController
	Formsets          *controllers.FormsetController
	Authors           *controllers.RecordController[models.Author]
	AuthorDetails     *controllers.RecordController[models.AuthorDetail]
	Categories        *controllers.RecordController[models.Category]
	Libraries         *controllers.RecordController[models.Library]
	Members           *controllers.RecordController[models.Member]
	Books             *controllers.RecordController[models.Book]
	Reviews           *controllers.RecordController[models.Review]
	Borrows           *controllers.RecordController[models.Borrow]
	Posts             *controllers.RecordController[models.Post]
	Events            *controllers.RecordController[models.Event]
	EventParticipants *controllers.RecordController[models.EventParticipant]
}

// NewControllers builds every controller over svc
func NewControllers(svc *services.Services, console *controllers.ConsoleController, auth *controllers.AuthController) *Controllers {
	return &Controllers{
		Auth:              auth,
		Console:           console,
		Relations:         controllers.NewRelationController(svc.Relations),
		Formsets:          controllers.NewFormsetController(svc.Formsets),
		Authors:           controllers.NewRecordController(svc.Authors, models.NewAuthor),
		AuthorDetails:     controllers.NewRecordController[models.AuthorDetail](svc.AuthorDetails, nil),
		Categories:        controllers.NewRecordController[models.Category](svc.Categories, nil),
		Libraries:         controllers.NewRecordController[models.Library](svc.Libraries, nil),
		Members:           controllers.NewRecordController(svc.Members, models.NewMember),
		Books:             controllers.NewRecordController[models.Book](svc.Books, nil),
		Reviews:           controllers.NewRecordController[models.Review](svc.Reviews, nil),
		Borrows:           controllers.NewRecordController[models.Borrow](svc.Borrows, nil),
		Posts:             controllers.NewRecordController[models.Post](svc.Posts, nil),
		Events:            controllers.NewRecordController[models.Event](svc.Events, nil),
		EventParticipants: controllers.NewRecordController[models.EventParticipant](svc.EventParticipants, nil),
	}
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", c.Auth.Me)

	// Console
	console := authenticated.Group("/admin")
	{
		console.GET("", c.Console.Index)
		console.GET("/:model", c.Console.ChangeList)
		console.GET("/:model/:id", c.Console.ChangeView)
		console.POST("/:model/actions", c.Console.RunAction)
	}

	// Record API
	c.Authors.Register(authenticated.Group("/authors"))
	c.AuthorDetails.Register(authenticated.Group("/author-details"))
	c.Categories.Register(authenticated.Group("/categories"))
	c.Libraries.Register(authenticated.Group("/libraries"))
	c.Members.Register(authenticated.Group("/members"))
	c.Books.Register(authenticated.Group("/books"))
	c.Reviews.Register(authenticated.Group("/reviews"))
	c.Borrows.Register(authenticated.Group("/borrows"))
	c.Posts.Register(authenticated.Group("/posts"))
	c.Events.Register(authenticated.Group("/events"))
	c.EventParticipants.Register(authenticated.Group("/event-participants"))

	// Many-to-many sets
	authenticated.GET("/libraries/:id/members", c.Relations.List(services.LibraryMembers))
	authenticated.PUT("/libraries/:id/members", c.Relations.Replace(services.LibraryMembers))
	authenticated.GET("/libraries/:id/books", c.Relations.List(services.LibraryBooks))
	authenticated.PUT("/libraries/:id/books", c.Relations.Replace(services.LibraryBooks))
	authenticated.GET("/events/:id/books", c.Relations.List(services.EventBooks))
	authenticated.PUT("/events/:id/books", c.Relations.Replace(services.EventBooks))

	// Inline formsets
	authenticated.PUT("/authors/:id/formset", c.Formsets.SaveAuthor)
	authenticated.PUT("/libraries/:id/formset", c.Formsets.SaveLibrary)
	authenticated.PUT("/members/:id/formset", c.Formsets.SaveMember)
	authenticated.PUT("/events/:id/formset", c.Formsets.SaveEvent)

	router.NoRoute(func(ctx *gin.Context) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
	})
}
