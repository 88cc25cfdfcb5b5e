//go:build unit

package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/usecase/queries"
	"booking-marketplace/internal/usecase/shared"
	queriesmock "booking-marketplace/tests/mock/queries"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

var errNoRows = errors.New("no rows in result set")

// memStore keeps rows in memory behind the mocked repositories. Reads hand out copies and
// updates are guarded by the version read, like the Postgres repositories.
type memStore struct {
	mu           sync.Mutex
	schedules    map[uuid.UUID]*schedule.Schedule
	services     map[uuid.UUID]shared.ServiceSnapshot
	users        map[uuid.UUID]shared.UserSnapshot
	reservations map[uuid.UUID]*reservation.Reservation
	payments     map[uuid.UUID]*payment.Payment
	ledgers      map[uuid.UUID][]*point.Transaction
	topics       []string
}

func newMemStore() *memStore {
	return &memStore{
		schedules:    make(map[uuid.UUID]*schedule.Schedule),
		services:     make(map[uuid.UUID]shared.ServiceSnapshot),
		users:        make(map[uuid.UUID]shared.UserSnapshot),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		payments:     make(map[uuid.UUID]*payment.Payment),
		ledgers:      make(map[uuid.UUID][]*point.Transaction),
	}
}

// wire routes every repository call of env to the store.
func (s *memStore) wire(env *txEnv) {
	env.reads.EXPECT().ScheduleByShopID(gomock.Any(), gomock.Any()).DoAndReturn(s.scheduleByShopID).AnyTimes()
	env.reads.EXPECT().ServicesByIDs(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.servicesByIDs).AnyTimes()
	env.reads.EXPECT().UserByID(gomock.Any(), gomock.Any()).DoAndReturn(s.userByID).AnyTimes()

	env.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.createReservation).AnyTimes()
	env.reservations.EXPECT().FindByID(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.findReservation).AnyTimes()
	env.reservations.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.updateReservation).AnyTimes()
	env.reservations.EXPECT().ListActiveInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(s.listActiveInRange).AnyTimes()
	env.reservations.EXPECT().ListAbandoned(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.listAbandoned).AnyTimes()

	env.payments.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.createPayment).AnyTimes()
	env.payments.EXPECT().FindByID(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.findPayment).AnyTimes()
	env.payments.EXPECT().FindByExternalID(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.findPaymentByExternalID).AnyTimes()
	env.payments.EXPECT().ListByReservation(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.listPayments).AnyTimes()
	env.payments.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.updatePayment).AnyTimes()
	env.payments.EXPECT().ListPendingCancellation(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.listPendingCancellation).AnyTimes()
	env.payments.EXPECT().ListExpiredPrepared(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.listExpiredPrepared).AnyTimes()

	env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.loadLedger).AnyTimes()
	env.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.appendPoints).AnyTimes()

	env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil).AnyTimes()
	env.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()

	env.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), shared.NotificationKindReservationEvent, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(s.createJob).AnyTimes()
}

// wireViews answers read-after-write lookups from the stored reservations.
func (s *memStore) wireViews(q *queriesmock.MockReservationQueries) {
	q.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).DoAndReturn(s.view).AnyTimes()
}

func (s *memStore) putSchedule(sched *schedule.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[sched.ShopID()] = sched
}

func (s *memStore) putService(svc shared.ServiceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *memStore) putUser(u shared.UserSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) putReservation(res *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[res.ID()] = cloneReservation(res)
}

func (s *memStore) putPayment(p *payment.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID()] = clonePayment(p)
}

func (s *memStore) putPoints(entries ...*point.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.ledgers[e.UserID()] = append(s.ledgers[e.UserID()], e)
	}
}

func (s *memStore) reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil
	}
	return cloneReservation(res)
}

func (s *memStore) payment(id uuid.UUID) *payment.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil
	}
	return clonePayment(p)
}

func (s *memStore) ledger(userID uuid.UUID) *point.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return point.NewLedger(userID, s.ledgers[userID])
}

func (s *memStore) eventCount(ev reservation.EventType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, topic := range s.topics {
		if topic == ev.String() {
			n++
		}
	}
	return n
}

func (s *memStore) scheduleByShopID(_ context.Context, shopID uuid.UUID) (*schedule.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sched, ok := s.schedules[shopID]
	if !ok {
		return nil, infra.WrapRepoErr("shop not found", errNoRows, infra.KindNotFound)
	}
	return sched, nil
}

func (s *memStore) servicesByIDs(_ context.Context, shopID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]shared.ServiceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]shared.ServiceSnapshot, len(ids))
	for _, id := range ids {
		if svc, ok := s.services[id]; ok && svc.ShopID == shopID {
			out[id] = svc
		}
	}
	return out, nil
}

func (s *memStore) userByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		u = shared.UserSnapshot{ID: id, Role: "customer"}
	}
	return &u, nil
}

func (s *memStore) createReservation(_ context.Context, _ any, res *reservation.Reservation) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.overlapping(res.ShopID(), res.ResourceKey(), res.Slot().Start(), res.Slot().End())) > 0 {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", errors.New("conflicting key value violates exclusion constraint"), infra.KindConflict)
	}
	s.reservations[res.ID()] = cloneReservation(res)
	return res.ID(), nil
}

func (s *memStore) findReservation(_ context.Context, _ any, id uuid.UUID) (*reservation.Reservation, error) {
	if res := s.reservation(id); res != nil {
		return res, nil
	}
	return nil, infra.WrapRepoErr("failed to get reservation", errNoRows, infra.KindNotFound)
}

func (s *memStore) updateReservation(_ context.Context, _ any, res *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.reservations[res.ID()]
	if !ok {
		return infra.WrapRepoErr("failed to update reservation", errNoRows, infra.KindNotFound)
	}
	if stored.Version() != res.ExpectedVersion() {
		return infra.WrapRepoErr("failed to update reservation", errNoRows, infra.KindStaleVersion)
	}
	s.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (s *memStore) listActiveInRange(_ context.Context, _ any, shopID, resourceKey uuid.UUID, from, to time.Time) ([]shared.ActiveSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlapping(shopID, resourceKey, from, to), nil
}

// overlapping uses half-open ranges, so a booking ending at 11:00 leaves 11:00 free.
func (s *memStore) overlapping(shopID, resourceKey uuid.UUID, from, to time.Time) []shared.ActiveSlot {
	var out []shared.ActiveSlot
	for _, res := range s.reservations {
		if !res.Status().IsActive() || res.ShopID() != shopID || res.ResourceKey() != resourceKey {
			continue
		}
		if res.Slot().Start().Before(to) && res.Slot().End().After(from) {
			out = append(out, shared.ActiveSlot{
				ReservationID: res.ID(),
				ResourceKey:   res.ResourceKey(),
				Start:         res.Slot().Start(),
				End:           res.Slot().End(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (s *memStore) listAbandoned(_ context.Context, _ any, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for id, res := range s.reservations {
		if res.Status() == reservation.StatusRequested && res.CreatedAt().Before(createdBefore) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	if len(ids) > int(limit) {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *memStore) createPayment(_ context.Context, _ any, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID()] = clonePayment(p)
	return nil
}

func (s *memStore) findPayment(_ context.Context, _ any, id uuid.UUID) (*payment.Payment, error) {
	if p := s.payment(id); p != nil {
		return p, nil
	}
	return nil, infra.WrapRepoErr("failed to get payment", errNoRows, infra.KindNotFound)
}

func (s *memStore) findPaymentByExternalID(_ context.Context, _ any, externalID string) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ExternalID() == externalID {
			return clonePayment(p), nil
		}
	}
	return nil, infra.WrapRepoErr("failed to get payment", errNoRows, infra.KindNotFound)
}

func (s *memStore) listPayments(_ context.Context, _ any, reservationID uuid.UUID) ([]*payment.Payment, error) {
	return s.selectPayments(func(p *payment.Payment) bool { return p.ReservationID() == reservationID }, 0), nil
}

func (s *memStore) updatePayment(_ context.Context, _ any, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.payments[p.ID()]
	if !ok {
		return infra.WrapRepoErr("failed to update payment", errNoRows, infra.KindNotFound)
	}
	if stored.Version() != p.ExpectedVersion() {
		return infra.WrapRepoErr("failed to update payment", errNoRows, infra.KindStaleVersion)
	}
	s.payments[p.ID()] = clonePayment(p)
	return nil
}

func (s *memStore) listPendingCancellation(_ context.Context, _ any, limit int32) ([]*payment.Payment, error) {
	return s.selectPayments(func(p *payment.Payment) bool {
		return p.CancellationRequested() && p.Refundable() > 0
	}, int(limit)), nil
}

func (s *memStore) listExpiredPrepared(_ context.Context, _ any, now time.Time, limit int32) ([]*payment.Payment, error) {
	return s.selectPayments(func(p *payment.Payment) bool { return p.IsExpired(now) }, int(limit)), nil
}

func (s *memStore) selectPayments(keep func(*payment.Payment) bool, limit int) []*payment.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*payment.Payment
	for _, p := range s.payments {
		if keep(p) {
			out = append(out, clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *memStore) loadLedger(_ context.Context, _ any, userID uuid.UUID) (*point.Ledger, error) {
	return s.ledger(userID), nil
}

func (s *memStore) appendPoints(_ context.Context, _ any, entries ...*point.Transaction) error {
	s.putPoints(entries...)
	return nil
}

func (s *memStore) createJob(_ context.Context, _ any, _, topic string, _ []byte, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	return nil
}

func (s *memStore) view(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res := s.reservation(id)
	if res == nil {
		return nil, infra.WrapRepoErr("failed to get reservation", errNoRows, infra.KindNotFound)
	}
	a := res.Amounts()
	return &queries.ReservationView{
		ID:              res.ID(),
		CustomerID:      res.CustomerID(),
		ShopID:          res.ShopID(),
		StartsAt:        res.Slot().Start(),
		EndsAt:          res.Slot().End(),
		Status:          res.Status().String(),
		TotalAmount:     a.Total.Amount(),
		DepositAmount:   a.Deposit.Amount(),
		RemainingAmount: a.Remaining.Amount(),
		PointsUsed:      a.PointsUsed.Amount(),
		PointsEarned:    res.PointsEarned(),
		Version:         res.Version(),
	}, nil
}

func cloneReservation(res *reservation.Reservation) *reservation.Reservation {
	a := res.Amounts()
	c, err := reservation.Reconstruct(reservation.ReconstructInput{
		ID:           res.ID(),
		CustomerID:   res.CustomerID(),
		ShopID:       res.ShopID(),
		ResourceID:   res.ResourceID(),
		ResourceKey:  res.ResourceKey(),
		Slot:         res.Slot(),
		Status:       res.Status(),
		LineItems:    res.LineItems(),
		Subtotal:     a.Subtotal.Amount(),
		PointsUsed:   a.PointsUsed.Amount(),
		Total:        a.Total.Amount(),
		Deposit:      a.Deposit.Amount(),
		Remaining:    a.Remaining.Amount(),
		PointsEarned: res.PointsEarned(),
		CancelReason: res.CancelReason(),
		Version:      res.Version(),
		CreatedAt:    res.CreatedAt(),
		UpdatedAt:    res.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

func clonePayment(p *payment.Payment) *payment.Payment {
	md := p.Metadata()
	md.CheckoutParams = maps.Clone(md.CheckoutParams)
	md.Snapshots = slices.Clone(md.Snapshots)
	md.Cancellations = slices.Clone(md.Cancellations)
	c, err := payment.Reconstruct(payment.ReconstructInput{
		ID:                    p.ID(),
		ReservationID:         p.ReservationID(),
		Stage:                 p.Stage(),
		ExternalID:            p.ExternalID(),
		OrderRef:              p.OrderRef(),
		Amount:                p.Amount(),
		Status:                p.Status(),
		Metadata:              md,
		CancellationRequested: p.CancellationRequested(),
		CancelReason:          p.CancelReason(),
		RefundedAmount:        p.RefundedAmount(),
		ExpiresAt:             p.ExpiresAt(),
		PaidAt:                p.PaidAt(),
		Version:               p.Version(),
		CreatedAt:             p.CreatedAt(),
		UpdatedAt:             p.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}
