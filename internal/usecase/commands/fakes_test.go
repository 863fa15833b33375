//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"testing"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/domain/guest"
	"villabook/internal/domain/unit"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// assertErrIs asserts through errs.Is so sentinels attached with errs.Mark
// are found; the stdlib errors.Is cannot see marks.
func assertErrIs(t *testing.T, err, want error) {
	t.Helper()
	assert.True(t, errs.Is(err, want), "expected %q in chain, got %v", want, err)
}

type fakeReservations struct {
	byID      map[uuid.UUID]*booking.Reservation
	byOrder   map[string]*booking.Reservation
	createErr error
	saved     int
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{
		byID:    map[uuid.UUID]*booking.Reservation{},
		byOrder: map[string]*booking.Reservation{},
	}
}

func (f *fakeReservations) CreateConfirmed(_ context.Context, res *booking.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if ref := res.Attestation().OrderRef; ref != "" {
		if _, ok := f.byOrder[ref]; ok {
			return infra.WrapRepoErr("order already confirmed", errs.New("dup"), infra.KindDuplicateKey)
		}
		f.byOrder[ref] = res
	}
	f.byID[res.ID()] = res
	return nil
}

func (f *fakeReservations) FindByID(_ context.Context, id uuid.UUID) (*booking.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errs.New("no rows"), infra.KindNotFound)
	}
	return res, nil
}

func (f *fakeReservations) FindByOrderRef(_ context.Context, orderRef string) (*booking.Reservation, error) {
	res, ok := f.byOrder[orderRef]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errs.New("no rows"), infra.KindNotFound)
	}
	return res, nil
}

func (f *fakeReservations) SaveCancellation(_ context.Context, res *booking.Reservation) error {
	f.saved++
	f.byID[res.ID()] = res
	return nil
}

func (f *fakeReservations) UpdateRefundStatus(_ context.Context, id uuid.UUID, _ booking.RefundStatus) error {
	if _, ok := f.byID[id]; !ok {
		return infra.WrapRepoErr("cancelled reservation not found", errs.New("no rows"), infra.KindNotFound)
	}
	return nil
}

type fakeUnits struct {
	byID map[uuid.UUID]*unit.Unit
}

func newFakeUnits(units ...*unit.Unit) *fakeUnits {
	f := &fakeUnits{byID: map[uuid.UUID]*unit.Unit{}}
	for _, u := range units {
		f.byID[u.ID()] = u
	}
	return f
}

func (f *fakeUnits) FindByID(_ context.Context, id uuid.UUID) (*unit.Unit, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("unit not found", errs.New("no rows"), infra.KindNotFound)
	}
	return u, nil
}

type fakeGuests struct {
	byPhone map[string]*guest.Guest
	created int
	// raceWith, when set, is inserted for its phone on the next Create so
	// the insert fails with a duplicate key, as a concurrent booking would.
	raceWith *guest.Guest
}

func newFakeGuests() *fakeGuests {
	return &fakeGuests{byPhone: map[string]*guest.Guest{}}
}

func (f *fakeGuests) FindByPhone(_ context.Context, phone string) (*guest.Guest, error) {
	g, ok := f.byPhone[phone]
	if !ok {
		return nil, infra.WrapRepoErr("guest not found", errs.New("no rows"), infra.KindNotFound)
	}
	return g, nil
}

func (f *fakeGuests) Create(_ context.Context, g *guest.Guest) error {
	if f.raceWith != nil {
		f.byPhone[f.raceWith.Phone()] = f.raceWith
		f.raceWith = nil
	}
	if _, ok := f.byPhone[g.Phone()]; ok {
		return infra.WrapRepoErr("guest already exists", errs.New("duplicate phone"), infra.KindDuplicateKey)
	}
	f.byPhone[g.Phone()] = g
	f.created++
	return nil
}

// fakeAvailability reports the same blocked set for every unit.
type fakeAvailability struct {
	blocked []daterange.Range
}

func (f *fakeAvailability) UnavailableForUnit(_ context.Context, _ uuid.UUID) ([]daterange.Range, error) {
	return f.blocked, nil
}

func (f *fakeAvailability) UnavailableForProperty(_ context.Context) ([]daterange.Range, error) {
	return f.blocked, nil
}

// fakeViews resolves any known reservation into a minimal view.
type fakeViews struct {
	reservations *fakeReservations
}

func (f *fakeViews) GetByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res, err := f.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, queries.ErrReservationNotFound
	}
	return &queries.ReservationView{
		ID:     res.ID(),
		UnitID: res.UnitID(),
		Status: res.Status().String(),
	}, nil
}

func (f *fakeViews) List(_ context.Context, _ int) ([]*queries.ReservationView, error) {
	return nil, nil
}

func (f *fakeViews) ListBlackouts(_ context.Context) ([]*queries.BlackoutView, error) {
	return nil, nil
}

type createdOrder struct {
	amount   int64
	currency string
	receipt  string
}

type fakeGateway struct {
	orders    map[string]createdOrder
	nextSeq   int
	createErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: map[string]createdOrder{}}
}

func (f *fakeGateway) Provider() string { return "razorpay" }

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (commands.PaymentOrder, error) {
	if f.createErr != nil {
		return commands.PaymentOrder{}, f.createErr
	}
	f.nextSeq++
	ref := fmt.Sprintf("order_test_%d", f.nextSeq)
	f.orders[ref] = createdOrder{amount: amount, currency: currency, receipt: receipt}
	return commands.PaymentOrder{OrderRef: ref, ProviderKey: "rzp_test_key"}, nil
}

func (f *fakeGateway) FetchOrderReceipt(_ context.Context, orderRef string) (string, error) {
	o, ok := f.orders[orderRef]
	if !ok {
		return "", errs.New("order not found")
	}
	return o.receipt, nil
}

// VerifySignature accepts only the literal "valid".
func (f *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == "valid"
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Notify(_ context.Context, eventType string, _ map[string]any) {
	f.events = append(f.events, eventType)
}
