package inquiries_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/intake/internal/classifier"
	"github.com/JaimeStill/intake/internal/inquiries"
	"github.com/JaimeStill/intake/pkg/pagination"
)

const inquiryColumns = "i.id, i.name, i.email, i.inquiry_text, i.category, i.urgency, i.summary, i.created_at"

type recordedQuery struct {
	sql  string
	args []driver.Value
}

// scriptedDB is a database/sql driver whose query results come from respond.
type scriptedDB struct {
	mu        sync.Mutex
	queries   []recordedQuery
	commits   int
	rollbacks int
	respond   func(query string, args []driver.Value) (driver.Rows, error)
}

func newScriptedStore(t *testing.T, respond func(string, []driver.Value) (driver.Rows, error)) (inquiries.Store, *scriptedDB) {
	t.Helper()
	script := &scriptedDB{respond: respond}
	db := sql.OpenDB(script)
	t.Cleanup(func() { db.Close() })
	return inquiries.NewStore(db, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}), script
}

func (s *scriptedDB) Connect(context.Context) (driver.Conn, error) { return &scriptedConn{db: s}, nil }
func (s *scriptedDB) Driver() driver.Driver                        { return s }
func (s *scriptedDB) Open(string) (driver.Conn, error)             { return &scriptedConn{db: s}, nil }

func (s *scriptedDB) recorded() []recordedQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedQuery(nil), s.queries...)
}

type scriptedConn struct {
	db *scriptedDB
}

func (c *scriptedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements not scripted")
}

func (c *scriptedConn) Close() error { return nil }

func (c *scriptedConn) Begin() (driver.Tx, error) { return &scriptedTx{db: c.db}, nil }

func (c *scriptedConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return &scriptedTx{db: c.db}, nil
}

func (c *scriptedConn) QueryContext(_ context.Context, query string, named []driver.NamedValue) (driver.Rows, error) {
	args := make([]driver.Value, len(named))
	for i, nv := range named {
		args[i] = nv.Value
	}

	c.db.mu.Lock()
	c.db.queries = append(c.db.queries, recordedQuery{sql: strings.TrimSpace(query), args: args})
	c.db.mu.Unlock()

	return c.db.respond(query, args)
}

type scriptedTx struct {
	db *scriptedDB
}

func (t *scriptedTx) Commit() error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.commits++
	return nil
}

func (t *scriptedTx) Rollback() error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.rollbacks++
	return nil
}

type rowSet struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *rowSet) Columns() []string { return r.columns }
func (r *rowSet) Close() error      { return nil }

func (r *rowSet) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

func inquiryRows(rows ...[]driver.Value) *rowSet {
	return &rowSet{
		columns: []string{"id", "name", "email", "inquiry_text", "category", "urgency", "summary", "created_at"},
		rows:    rows,
	}
}

func inquiryRow(id int64, name string, at time.Time) []driver.Value {
	return []driver.Value{id, name, strings.ToLower(name) + "@example.com", "My invoice is wrong", "Billing", "High", "Invoice dispute", at}
}

func countRows(n int64) *rowSet {
	return &rowSet{columns: []string{"count"}, rows: [][]driver.Value{{n}}}
}

var submitted = inquiries.SubmitCommand{
	Name:    "Ada",
	Email:   "ada@example.com",
	Inquiry: "My invoice is wrong",
}

var billingHigh = classifier.Result{
	Category: classifier.CategoryBilling,
	Urgency:  classifier.UrgencyHigh,
	Summary:  "Invoice dispute",
}

func TestStoreInsertReturnsRecord(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store, script := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return inquiryRows(inquiryRow(7, "Ada", at)), nil
	})

	inq, err := store.Insert(context.Background(), submitted, billingHigh)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if inq.ID != 7 || inq.Category != classifier.CategoryBilling || inq.Urgency != classifier.UrgencyHigh {
		t.Errorf("Insert() = %+v", inq)
	}
	if !inq.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", inq.CreatedAt, at)
	}

	q := script.recorded()
	if len(q) != 1 || !strings.HasPrefix(q[0].sql, "INSERT INTO inquiries") {
		t.Fatalf("queries = %v", q)
	}
	want := []driver.Value{"Ada", "ada@example.com", "My invoice is wrong", "Billing", "High", "Invoice dispute"}
	for i, v := range want {
		if q[0].args[i] != v {
			t.Errorf("arg %d = %v, want %v", i+1, q[0].args[i], v)
		}
	}
	if script.commits != 1 || script.rollbacks != 0 {
		t.Errorf("commits/rollbacks = %d/%d, want 1/0", script.commits, script.rollbacks)
	}
}

func TestStoreInsertConstraintViolation(t *testing.T) {
	store, script := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return nil, &pgconn.PgError{Code: "23514", ConstraintName: "inquiries_category_check"}
	})

	_, err := store.Insert(context.Background(), submitted, classifier.Result{Category: "Spam", Urgency: "High"})
	if !errors.Is(err, inquiries.ErrWriteFailed) {
		t.Fatalf("Insert() error = %v, want ErrWriteFailed", err)
	}
	if !errors.Is(err, inquiries.ErrConstraint) {
		t.Errorf("Insert() error = %v, want ErrConstraint in chain", err)
	}
	if got := inquiries.MapHTTPStatus(err); got != http.StatusInternalServerError {
		t.Errorf("MapHTTPStatus() = %d, want 500", got)
	}
	if script.commits != 0 || script.rollbacks != 1 {
		t.Errorf("commits/rollbacks = %d/%d, want 0/1", script.commits, script.rollbacks)
	}
}

func TestStoreInsertFault(t *testing.T) {
	cause := errors.New("connection reset by peer")
	store, _ := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return nil, cause
	})

	_, err := store.Insert(context.Background(), submitted, billingHigh)
	if !errors.Is(err, inquiries.ErrWriteFailed) {
		t.Fatalf("Insert() error = %v, want ErrWriteFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Insert() error = %v, want driver cause kept", err)
	}
	if errors.Is(err, inquiries.ErrConstraint) {
		t.Errorf("Insert() error = %v, should not be a constraint violation", err)
	}
}

func TestStoreFind(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store, script := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return inquiryRows(inquiryRow(42, "Ada", at)), nil
	})

	inq, err := store.Find(context.Background(), 42)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if inq.ID != 42 || inq.Name != "Ada" || inq.Summary != "Invoice dispute" {
		t.Errorf("Find() = %+v", inq)
	}

	q := script.recorded()
	wantSQL := "SELECT " + inquiryColumns + " FROM public.inquiries i WHERE i.id = $1"
	if q[0].sql != wantSQL {
		t.Errorf("sql = %q\nwant  %q", q[0].sql, wantSQL)
	}
	if q[0].args[0] != int64(42) {
		t.Errorf("id arg = %v, want 42", q[0].args[0])
	}
}

func TestStoreFindNotFound(t *testing.T) {
	store, _ := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return inquiryRows(), nil
	})

	_, err := store.Find(context.Background(), 99)
	if !errors.Is(err, inquiries.ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestStoreListAllNewestFirst(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store, script := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return inquiryRows(
			inquiryRow(3, "Cy", at.Add(time.Minute)),
			inquiryRow(2, "Bo", at),
			inquiryRow(1, "Ada", at),
		), nil
	})

	items, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("ListAll() returned %d, want 3", len(items))
	}
	for i, id := range []int64{3, 2, 1} {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, id)
		}
	}

	wantSQL := "SELECT " + inquiryColumns + " FROM public.inquiries i ORDER BY i.created_at DESC, i.id DESC"
	if q := script.recorded(); q[0].sql != wantSQL {
		t.Errorf("sql = %q\nwant  %q", q[0].sql, wantSQL)
	}
}

func TestStoreListAllEmpty(t *testing.T) {
	store, _ := newScriptedStore(t, func(string, []driver.Value) (driver.Rows, error) {
		return inquiryRows(), nil
	})

	items, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("ListAll() = %v, want empty non-nil slice", items)
	}
}

func TestStoreListFiltersAndPages(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store, script := newScriptedStore(t, func(query string, _ []driver.Value) (driver.Rows, error) {
		if strings.HasPrefix(query, "SELECT COUNT(*)") {
			return countRows(12), nil
		}
		return inquiryRows(inquiryRow(2, "Ada", at), inquiryRow(1, "Adam", at)), nil
	})

	search := "refund"
	name := "ada"
	category := "Billing"
	page := pagination.PageRequest{Page: 2, PageSize: 10, Search: &search}

	result, err := store.List(context.Background(), page, inquiries.Filters{Name: &name, Category: &category})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 12 || result.TotalPages != 2 || len(result.Data) != 2 {
		t.Errorf("List() = total %d pages %d len %d", result.Total, result.TotalPages, len(result.Data))
	}

	where := " WHERE (i.name ILIKE $1 OR i.email ILIKE $2 OR i.inquiry_text ILIKE $3 OR i.summary ILIKE $4)" +
		" AND i.name ILIKE $5 AND i.category = $6"

	q := script.recorded()
	if len(q) != 2 {
		t.Fatalf("queries = %d, want count and page", len(q))
	}
	if want := "SELECT COUNT(*) FROM public.inquiries i" + where; q[0].sql != want {
		t.Errorf("count sql = %q\nwant        %q", q[0].sql, want)
	}
	wantPage := "SELECT " + inquiryColumns + " FROM public.inquiries i" + where +
		" ORDER BY i.created_at DESC, i.id DESC LIMIT 10 OFFSET 10"
	if q[1].sql != wantPage {
		t.Errorf("page sql = %q\nwant       %q", q[1].sql, wantPage)
	}

	wantArgs := []driver.Value{"%refund%", "%refund%", "%refund%", "%refund%", "%ada%", "Billing"}
	for i, v := range wantArgs {
		if q[1].args[i] != v {
			t.Errorf("arg %d = %v, want %v", i+1, q[1].args[i], v)
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	f := inquiries.FiltersFromQuery(url.Values{
		"name":     {"ada"},
		"category": {"Billing"},
	})

	if f.Name == nil || *f.Name != "ada" {
		t.Errorf("Name = %v, want ada", f.Name)
	}
	if f.Category == nil || *f.Category != "Billing" {
		t.Errorf("Category = %v, want Billing", f.Category)
	}
	if f.Urgency != nil || f.Email != nil {
		t.Errorf("unset filters should be nil: %+v", f)
	}
}
