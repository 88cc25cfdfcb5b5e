//go:build e2e

package e2e

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"booking-marketplace/internal/domain/user"
	resdto "booking-marketplace/internal/handler/dto/response"
	"booking-marketplace/internal/infra/gateway"
	"booking-marketplace/tests/common/dbtest"
	"booking-marketplace/tests/common/httptest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReservationE2ESuite struct {
	SharedSuite
}

func TestReservationE2ESuite(t *testing.T) {
	suite.Run(t, new(ReservationE2ESuite))
}

type shopSetup struct {
	shopID    uuid.UUID
	serviceID uuid.UUID
	ownerID   uuid.UUID
}

func (s *ReservationE2ESuite) newShop() shopSetup {
	ownerID := dbtest.CreateTestUser(s.T(), s.DB, "owner-"+uuid.NewString()[:8]+"@example.com", "shop_owner", false)
	shopID := dbtest.CreateTestShop(s.T(), s.DB, dbtest.DefaultShopFixture(ownerID))
	serviceID := dbtest.CreateTestService(s.T(), s.DB, shopID, "Cut", 100000)
	return shopSetup{shopID: shopID, serviceID: serviceID, ownerID: ownerID}
}

func (s *ReservationE2ESuite) newCustomer() (uuid.UUID, string) {
	id := dbtest.CreateTestUser(s.T(), s.DB, "customer-"+uuid.NewString()[:8]+"@example.com", "customer", false)
	return id, s.JWT.GenerateToken(s.T(), id, user.RoleCustomer)
}

// bookingDate is far enough ahead that the slot never lies in the past.
func bookingDate() string {
	loc, _ := time.LoadLocation("Asia/Seoul")
	return time.Now().In(loc).AddDate(0, 0, 14).Format(time.DateOnly)
}

func reserveBody(shop shopSetup, date, startTime string) map[string]any {
	return map[string]any{
		"shopId":          shop.shopID,
		"date":            date,
		"startTime":       startTime,
		"durationMinutes": 60,
		"items":           []map[string]any{{"serviceId": shop.serviceID, "quantity": 1}},
	}
}

func (s *ReservationE2ESuite) reserve(token string, body map[string]any, key uuid.UUID) (int, resdto.CreateReservationResponse) {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/reservations", body,
		map[string]string{"Idempotency-Key": key.String()}, token)
	var out resdto.CreateReservationResponse
	if rec.Code < 300 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func (s *ReservationE2ESuite) TestReserve() {
	s.Run("success: deposit derived from catalogue prices", func() {
		shop := s.newShop()
		_, token := s.newCustomer()

		code, out := s.reserve(token, reserveBody(shop, bookingDate(), "10:00"), uuid.New())
		s.Require().Equal(http.StatusCreated, code)
		s.Equal("requested", out.Reservation.Status)
		s.Equal(int64(100000), out.Reservation.TotalAmount)
		s.Equal(int64(20000), out.Reservation.DepositAmount)
		s.Equal(int64(80000), out.Reservation.RemainingAmount)
		s.False(out.IsReplayed)
	})

	s.Run("success: same key replays the first reservation", func() {
		shop := s.newShop()
		_, token := s.newCustomer()
		key := uuid.New()
		body := reserveBody(shop, bookingDate(), "11:00")

		code, first := s.reserve(token, body, key)
		s.Require().Equal(http.StatusCreated, code)

		code, second := s.reserve(token, body, key)
		s.Require().Equal(http.StatusOK, code)
		s.True(second.IsReplayed)
		s.Equal(first.Reservation.ID, second.Reservation.ID)

		var count int
		s.Require().NoError(s.DB.QueryRow(context.Background(), "SELECT count(*) FROM reservations WHERE shop_id = $1", shop.shopID).Scan(&count))
		s.Equal(1, count)
	})

	s.Run("error: same key with a different body is rejected", func() {
		shop := s.newShop()
		_, token := s.newCustomer()
		key := uuid.New()

		code, _ := s.reserve(token, reserveBody(shop, bookingDate(), "12:00"), key)
		s.Require().Equal(http.StatusCreated, code)

		code, _ = s.reserve(token, reserveBody(shop, bookingDate(), "13:00"), key)
		s.Equal(http.StatusUnprocessableEntity, code)
	})

	s.Run("error: concurrent bookings of one slot admit exactly one", func() {
		shop := s.newShop()
		const attempts = 8
		date := bookingDate()

		tokens := make([]string, attempts)
		for i := range tokens {
			_, tokens[i] = s.newCustomer()
		}

		codes := make([]int, attempts)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/reservations",
					reserveBody(shop, date, "15:00"), map[string]string{"Idempotency-Key": uuid.NewString()}, tokens[i])
				codes[i] = rec.Code
			}(i)
		}
		close(start)
		wg.Wait()

		tally := map[int]int{}
		for _, c := range codes {
			tally[c]++
		}
		if diff := cmp.Diff(map[int]int{http.StatusCreated: 1, http.StatusConflict: attempts - 1}, tally); diff != "" {
			s.Failf("unexpected status tally", "(-want +got):\n%s", diff)
		}
	})

	s.Run("error: slot outside operating hours", func() {
		shop := s.newShop()
		_, token := s.newCustomer()

		code, _ := s.reserve(token, reserveBody(shop, bookingDate(), "22:00"), uuid.New())
		s.Equal(http.StatusUnprocessableEntity, code)
	})
}

func (s *ReservationE2ESuite) TestDepositPaymentConfirmsReservation() {
	s.Run("success: paid deposit confirms and publishes events", func() {
		shop := s.newShop()
		_, token := s.newCustomer()

		code, created := s.reserve(token, reserveBody(shop, bookingDate(), "10:00"), uuid.New())
		s.Require().Equal(http.StatusCreated, code)
		reservationID := created.Reservation.ID.String()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+reservationID+"/payments",
			map[string]any{"stage": "deposit"}, token)
		var intent resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &intent)
		s.Equal(int64(20000), intent.Amount)

		s.Gateway.MarkPaid(intent.ExternalPaymentID)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/confirm",
			map[string]any{"externalPaymentId": intent.ExternalPaymentID}, token)
		var confirmation resdto.ConfirmationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmation)
		s.Equal("paid", confirmation.PaymentStatus)
		s.Equal("confirmed", confirmation.ReservationStatus)

		// a second confirmation is a no-op
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/confirm",
			map[string]any{"externalPaymentId": intent.ExternalPaymentID}, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmation)
		s.True(confirmation.AlreadyProcessed)

		result, err := s.Outbox.RelayDue(context.Background())
		s.Require().NoError(err)
		s.GreaterOrEqual(result.Sent, 2)
		s.Contains(s.Publisher.Topics(), "reservation_confirmed")
	})
}

func (s *ReservationE2ESuite) prepareDeposit(token, reservationID string) resdto.PaymentIntentResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+reservationID+"/payments",
		map[string]any{"stage": "deposit"}, token)
	var intent resdto.PaymentIntentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &intent)
	return intent
}

func (s *ReservationE2ESuite) postWebhook(payload []byte, signature string) *nethttptest.ResponseRecorder {
	return httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/webhooks/payments", payload,
		map[string]string{"X-Gateway-Signature": signature})
}

func (s *ReservationE2ESuite) TestPaymentWebhook() {
	s.Run("success: replayed webhook is applied once", func() {
		shop := s.newShop()
		_, token := s.newCustomer()

		code, created := s.reserve(token, reserveBody(shop, bookingDate(), "10:00"), uuid.New())
		s.Require().Equal(http.StatusCreated, code)
		intent := s.prepareDeposit(token, created.Reservation.ID.String())
		s.Gateway.MarkPaid(intent.ExternalPaymentID)

		payload := []byte(fmt.Sprintf(`{"external_payment_id":%q,"status":"paid"}`, intent.ExternalPaymentID))
		signature := hex.EncodeToString(gateway.Sign([]byte(s.Config.Gateway.WebhookSecret), payload))

		var first, second resdto.ConfirmationResponse
		httptest.AssertSuccessResponse(s.T(), s.postWebhook(payload, signature), http.StatusOK, &first)
		s.False(first.AlreadyProcessed)
		s.Equal("confirmed", first.ReservationStatus)

		httptest.AssertSuccessResponse(s.T(), s.postWebhook(payload, signature), http.StatusOK, &second)
		s.True(second.AlreadyProcessed)
		s.Equal("paid", second.PaymentStatus)

		var (
			status  string
			version int64
			events  int
		)
		ctx := context.Background()
		s.Require().NoError(s.DB.QueryRow(ctx, "SELECT status, version FROM reservations WHERE id = $1", created.Reservation.ID).
			Scan(&status, &version))
		s.Equal("confirmed", status)
		s.Equal(int64(2), version)
		s.Require().NoError(s.DB.QueryRow(ctx,
			"SELECT count(*) FROM notification_jobs WHERE topic = 'reservation_confirmed' AND payload->>'reservation_id' = $1",
			created.Reservation.ID.String()).Scan(&events))
		s.Equal(1, events)
	})

	s.Run("error: forged signature is rejected", func() {
		payload := []byte(`{"external_payment_id":"pay_forged","status":"paid"}`)
		rec := s.postWebhook(payload, hex.EncodeToString([]byte("not-a-signature")))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *ReservationE2ESuite) TestCancelReleasesSlot() {
	s.Run("success: cancelled slot can be booked again", func() {
		shop := s.newShop()
		_, aliceToken := s.newCustomer()
		_, bobToken := s.newCustomer()
		date := bookingDate()

		code, held := s.reserve(aliceToken, reserveBody(shop, date, "10:00"), uuid.New())
		s.Require().Equal(http.StatusCreated, code)

		code, _ = s.reserve(bobToken, reserveBody(shop, date, "10:00"), uuid.New())
		s.Equal(http.StatusConflict, code)

		code, _ = s.reserve(bobToken, reserveBody(shop, date, "11:00"), uuid.New())
		s.Equal(http.StatusCreated, code, "adjacent slot shares only the boundary")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+held.Reservation.ID.String()+"/cancel",
			map[string]any{"reason": "plans changed"}, aliceToken)
		var cancelled resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal("cancelled_by_user", cancelled.Status)

		code, rebooked := s.reserve(bobToken, reserveBody(shop, date, "10:00"), uuid.New())
		s.Require().Equal(http.StatusCreated, code)
		s.NotEqual(held.Reservation.ID, rebooked.Reservation.ID)
	})
}
