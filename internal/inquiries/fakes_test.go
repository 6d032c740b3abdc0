package inquiries_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/JaimeStill/intake/internal/classifier"
	"github.com/JaimeStill/intake/internal/inquiries"
	"github.com/JaimeStill/intake/internal/notifier"
	"github.com/JaimeStill/intake/pkg/pagination"
)

type fakeClassifier struct {
	classify func(ctx context.Context, text string) (classifier.Result, error)
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (classifier.Result, error) {
	return f.classify(ctx, text)
}

func (f *fakeClassifier) Name() string { return "fake" }

func classifyAs(r classifier.Result) *fakeClassifier {
	return &fakeClassifier{
		classify: func(context.Context, string) (classifier.Result, error) { return r, nil },
	}
}

func classifyFail(err error) *fakeClassifier {
	return &fakeClassifier{
		classify: func(context.Context, string) (classifier.Result, error) { return classifier.Result{}, err },
	}
}

type notifyCall struct {
	kind notifier.Kind
	to   string
	data notifier.TemplateData
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, kind notifier.Kind, to string, data notifier.TemplateData) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{kind: kind, to: to, data: data})
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

func (f *fakeNotifier) Calls() []notifyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// memStore is an in-memory Store with the same ordering contract as the
// PostgreSQL store.
type memStore struct {
	mu        sync.RWMutex
	rows      []inquiries.Inquiry
	nextID    int64
	insertErr error
	// insertHook runs after a successful insert.
	insertHook func()
	now        func() time.Time
}

func newMemStore() *memStore {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	return &memStore{
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (m *memStore) Insert(_ context.Context, cmd inquiries.SubmitCommand, c classifier.Result) (*inquiries.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return nil, m.insertErr
	}

	m.nextID++
	inq := inquiries.Inquiry{
		ID:          m.nextID,
		Name:        cmd.Name,
		Email:       cmd.Email,
		InquiryText: cmd.Inquiry,
		Category:    c.Category,
		Urgency:     c.Urgency,
		Summary:     c.Summary,
		CreatedAt:   m.now(),
	}
	m.rows = append(m.rows, inq)
	if m.insertHook != nil {
		m.insertHook()
	}
	return &inq, nil
}

func (m *memStore) Find(_ context.Context, id int64) (*inquiries.Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, inquiries.ErrNotFound
}

func (m *memStore) ListAll(context.Context) ([]inquiries.Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := slices.Clone(m.rows)
	slices.SortFunc(out, func(a, b inquiries.Inquiry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	if out == nil {
		out = []inquiries.Inquiry{}
	}
	return out, nil
}

func (m *memStore) List(ctx context.Context, page pagination.PageRequest, _ inquiries.Filters) (*pagination.PageResult[inquiries.Inquiry], error) {
	all, _ := m.ListAll(ctx)
	result := pagination.NewPageResult(all, len(all), page.Page, page.PageSize)
	return &result, nil
}
