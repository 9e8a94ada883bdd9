package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func referenceData() map[organization.CollectionKind]any {
	return map[organization.CollectionKind]any{
		organization.CollectionPositions: []organization.Position{
			{ID: 1, Name: "Store Staff"},
			{ID: 2, Name: "Store Manager"},
			{ID: 3, Name: "Warehouse Staff"},
			{ID: 4, Name: "Warehouse Manager"},
			{ID: 5, Name: "Accountant"},
		},
		organization.CollectionSupermarkets: []organization.Workplace{
			organization.Supermarket(1, "Centrum"),
			organization.Supermarket(2, "Dukla"),
		},
		organization.CollectionWarehouses: []organization.Workplace{
			organization.Warehouse(1, "North"),
		},
		organization.CollectionAddresses: []organization.Address{
			{ID: 1, Street: "Studentská 95", City: "Pardubice", Zip: "53210"},
		},
		organization.CollectionEmployees: []organization.Employee{
			{ID: 10, FirstName: "Jana", LastName: "Novak", PositionID: 2, Workplace: organization.Supermarket(1, ""), Salary: money("42000")},
			{ID: 11, FirstName: "Petr", LastName: "Svoboda", PositionID: 1, Workplace: organization.Supermarket(1, ""), ManagerID: 10, Salary: money("28000")},
			{ID: 12, FirstName: "Eva", LastName: "Dvorak", PositionID: 1, Workplace: organization.Supermarket(1, ""), ManagerID: 10},
			{ID: 20, FirstName: "Tomas", LastName: "Cerny", PositionID: 4, Workplace: organization.Warehouse(1, "")},
			{ID: 30, FirstName: "Marek", LastName: "Kucera", PositionID: 5, Workplace: organization.NoWorkplace()},
		},
	}
}

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// fakeSource gate 中的集合會等到 release 才回來
type fakeSource struct {
	mu    sync.Mutex
	data  map[organization.CollectionKind]any
	errs  map[organization.CollectionKind]error
	gates map[organization.CollectionKind]chan struct{}
	calls map[organization.CollectionKind]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		data:  referenceData(),
		errs:  map[organization.CollectionKind]error{},
		gates: map[organization.CollectionKind]chan struct{}{},
		calls: map[organization.CollectionKind]int{},
	}
}

func (f *fakeSource) hold(kind organization.CollectionKind) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[kind] = gate
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (f *fakeSource) fail(kind organization.CollectionKind, err error) {
	f.mu.Lock()
	f.errs[kind] = err
	f.mu.Unlock()
}

func (f *fakeSource) Fetch(ctx context.Context, kind organization.CollectionKind) (any, error) {
	f.mu.Lock()
	f.calls[kind]++
	gate := f.gates[kind]
	data, err := f.data[kind], f.errs[kind]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fakeSource) callCount(kind organization.CollectionKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}

var errUnreachable = errors.New("connection refused")

func requireCode(t *testing.T, err error, code int) *cErr.Error {
	t.Helper()
	var appErr *cErr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.ErrorCode(), appErr.Error())
	return appErr
}
