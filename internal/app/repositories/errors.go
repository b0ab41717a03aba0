package repositories

import "github.com/yigit/librarium/internal/pkg/dberrors"

// Constraint names from the schema mapped to the JSON field they guard.
var (
	authorConstraints = map[string]string{
		"authors_rating_check": "rating",
	}
	authorDetailConstraints = map[string]string{
		"author_details_author_id_key":  "author_id",
		"author_details_author_id_fkey": "author_id",
		"author_details_gender_check":   "gender",
	}
	categoryConstraints = map[string]string{
		"categories_name_key": "name",
	}
	memberConstraints = map[string]string{
		"members_email_key":    "email",
		"members_age_check":    "age",
		"members_gender_check": "gender",
		"members_role_check":   "role",
	}
	bookConstraints = map[string]string{
		"books_title_author_key": "title",
		"books_author_id_fkey":   "author_id",
		"books_category_id_fkey": "category_id",
		"books_pages_check":      "pages",
		"books_genre_check":      "genre",
	}
	reviewConstraints = map[string]string{
		"reviews_book_id_fkey":     "book_id",
		"reviews_reviewer_id_fkey": "reviewer_id",
		"reviews_rating_check":     "rating",
	}
	borrowConstraints = map[string]string{
		"borrows_member_book_date_key": "borrow_date",
		"borrows_member_id_fkey":       "member_id",
		"borrows_book_id_fkey":         "book_id",
		"borrows_library_id_fkey":      "library_id",
	}
	postConstraints = map[string]string{
		"posts_title_created_at_key": "title",
		"posts_author_id_fkey":       "author_id",
		"posts_library_id_fkey":      "library_id",
	}
	eventConstraints = map[string]string{
		"events_title_date_key":  "title",
		"events_library_id_fkey": "library_id",
	}
	eventParticipantConstraints = map[string]string{
		"event_participants_event_member_key": "member_id",
		"event_participants_event_id_fkey":    "event_id",
		"event_participants_member_id_fkey":   "member_id",
	}
	linkConstraints = map[string]string{
		"library_members_member_id_fkey": "ids",
		"library_books_book_id_fkey":     "ids",
		"event_books_book_id_fkey":       "ids",
	}
	adminUserConstraints = map[string]string{
		"admin_users_username_key": "username",
	}
)

func translate(err error, constraints map[string]string) error {
	return dberrors.Translate(err, constraints)
}
