package inquiries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/intake/internal/classifier"
	"github.com/JaimeStill/intake/pkg/pagination"
	"github.com/JaimeStill/intake/pkg/query"
	"github.com/JaimeStill/intake/pkg/repository"
)

// Store is the durable inquiry table. Each Insert is atomic and assigns
// the id and created_at.
type Store interface {
	Insert(ctx context.Context, cmd SubmitCommand, c classifier.Result) (*Inquiry, error)
	Find(ctx context.Context, id int64) (*Inquiry, error)
	// ListAll returns every inquiry, newest first.
	ListAll(ctx context.Context) ([]Inquiry, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Inquiry], error)
}

var storeErrors = repository.Errors{
	NotFound: ErrNotFound,
	Conflict: ErrConstraint,
	WriteErr: ErrWriteFailed,
}

type store struct {
	db         *sql.DB
	pagination pagination.Config
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB, pagination pagination.Config) Store {
	return &store{
		db:         db,
		pagination: pagination,
	}
}

func (s *store) Insert(ctx context.Context, cmd SubmitCommand, c classifier.Result) (*Inquiry, error) {
	insertQ := `
		INSERT INTO inquiries(name, email, inquiry_text, category, urgency, summary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, inquiry_text, category, urgency, summary, created_at`

	args := []any{
		cmd.Name,
		cmd.Email,
		cmd.Inquiry,
		string(c.Category),
		string(c.Urgency),
		c.Summary,
	}

	inq, err := repository.InsertOne(ctx, s.db, insertQ, args, scanInquiry, storeErrors)
	if err != nil {
		return nil, err
	}

	return &inq, nil
}

func (s *store) Find(ctx context.Context, id int64) (*Inquiry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	inq, err := repository.QueryOne(ctx, s.db, q, args, scanInquiry)
	if err != nil {
		return nil, storeErrors.Read(err)
	}
	return &inq, nil
}

func (s *store) ListAll(ctx context.Context) ([]Inquiry, error) {
	q, args := query.
		NewBuilder(projection, defaultSort, idTiebreak).
		Build()

	items, err := repository.QueryMany(ctx, s.db, q, args, scanInquiry)
	if err != nil {
		return nil, fmt.Errorf("query inquiries: %w", err)
	}
	return items, nil
}

func (s *store) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Inquiry], error) {
	page.Normalize(s.pagination)

	qb := query.
		NewBuilder(projection, defaultSort, idTiebreak).
		WhereSearch(page.Search, "Name", "Email", "InquiryText", "Summary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort, idTiebreak)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count inquiries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanInquiry)
	if err != nil {
		return nil, fmt.Errorf("query inquiries: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}
