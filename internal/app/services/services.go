package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/pkg/auth"
)

// Services holds all the services used by the controllers
type Services struct {
	Authors           RecordService[models.Author]
	AuthorDetails     RecordService[models.AuthorDetail]
	Categories        RecordService[models.Category]
	Libraries         RecordService[models.Library]
	Members           RecordService[models.Member]
	Books             RecordService[models.Book]
	Reviews           RecordService[models.Review]
	Borrows           RecordService[models.Borrow]
	Posts             RecordService[models.Post]
	Events            RecordService[models.Event]
	EventParticipants RecordService[models.EventParticipant]

	Relations *RelationService
	Formsets  *FormsetService
	Auth      *AuthService
	Seed      *SeedService
}

// NewServices builds every service over stores. tx runs the transactional
// operations; now is the clock used for derived dates.
func NewServices(stores Stores, tx TxRunner, signer *auth.Signer, logger zerolog.Logger, now func() time.Time) *Services {
	if now == nil {
		now = time.Now
	}
	r := newRecords(stores, now)
	authService := NewAuthService(stores.AdminUsers, signer, logger, now)

	return &Services{
		Authors:           r.authors,
		AuthorDetails:     r.authorDetails,
		Categories:        r.categories,
		Libraries:         r.libraries,
		Members:           r.members,
		Books:             r.books,
		Reviews:           r.reviews,
		Borrows:           r.borrows,
		Posts:             r.posts,
		Events:            r.events,
		EventParticipants: r.eventParticipants,

		Relations: NewRelationService(stores, tx),
		Formsets:  NewFormsetService(tx, now),
		Auth:      authService,
		Seed:      NewSeedService(stores.Categories, authService, logger),
	}
}
