package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/librarium/internal/db"
	"github.com/yigit/librarium/internal/pkg/apperrors"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	Authors           *AuthorRepository
	AuthorDetails     *AuthorDetailRepository
	Categories        *CategoryRepository
	Libraries         *LibraryRepository
	Members           *MemberRepository
	Books             *BookRepository
	Reviews           *ReviewRepository
	Borrows           *BorrowRepository
	Posts             *PostRepository
	Events            *EventRepository
	EventParticipants *EventParticipantRepository
	AdminUsers        *AdminUserRepository
	Console           *ConsoleRepository
}

// NewRepositories initializes all repositories over q, which is either the
// pool or a transaction.
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		Authors:           NewAuthorRepository(q),
		AuthorDetails:     NewAuthorDetailRepository(q),
		Categories:        NewCategoryRepository(q),
		Libraries:         NewLibraryRepository(q),
		Members:           NewMemberRepository(q),
		Books:             NewBookRepository(q),
		Reviews:           NewReviewRepository(q),
		Borrows:           NewBorrowRepository(q),
		Posts:             NewPostRepository(q),
		Events:            NewEventRepository(q),
		EventParticipants: NewEventParticipantRepository(q),
		AdminUsers:        NewAdminUserRepository(q),
		Console:           NewConsoleRepository(q),
	}
}

// notFound turns pgx.ErrNoRows into a not-found error naming the record
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf(format, args...))
	}
	return err
}

// exists runs SELECT EXISTS over the given subquery
func exists(ctx context.Context, q db.Querier, sub squirrel.SelectBuilder) (bool, error) {
	query, args, err := sub.ToSql()
	if err != nil {
		return false, err
	}
	var found bool
	if err := q.QueryRow(ctx, "SELECT EXISTS("+query+")", args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// excluding skips the record being updated in uniqueness checks
func excluding(b squirrel.SelectBuilder, id int64) squirrel.SelectBuilder {
	if id > 0 {
		return b.Where(squirrel.NotEq{"id": id})
	}
	return b
}

// execOne runs a statement that must touch exactly one existing row
func execOne(ctx context.Context, q db.Querier, stmt squirrel.Sqlizer, constraints map[string]string, what string, id int64) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("building statement for %s %d: %w", what, id, err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error writing %s %d: %w", what, id, translate(err, constraints))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", what, id))
	}
	return nil
}

// linkedIDs lists the ids on the other side of a many-to-many table
func linkedIDs(ctx context.Context, q db.Querier, table, ownerCol, otherCol string, ownerID int64) ([]int64, error) {
	query, args, err := psql.Select(otherCol).From(table).Where(squirrel.Eq{ownerCol: ownerID}).OrderBy(otherCol).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", table, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", table, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// replaceLinks makes ids the complete set linked to ownerID. Callers run it
// inside a transaction.
func replaceLinks(ctx context.Context, q db.Querier, table, ownerCol, otherCol string, ownerID int64, ids []int64, constraints map[string]string) error {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{ownerCol: ownerID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("error clearing %s: %w", table, err)
	}
	if len(ids) == 0 {
		return nil
	}

	insert := psql.Insert(table).Columns(ownerCol, otherCol)
	for _, id := range ids {
		insert = insert.Values(ownerID, id)
	}
	query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("error linking %s: %w", table, translate(err, constraints))
	}
	return nil
}
