//go:build e2e

package helper

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakePayment struct {
	ExternalPaymentID string     `json:"external_payment_id"`
	Status            string     `json:"status"`
	Amount            int64      `json:"amount"`
	OrderRef          string     `json:"order_ref"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	FailReason        string     `json:"fail_reason,omitempty"`
}

// FakeGateway is an in-memory payment gateway. Prepared payments stay pending until the test
// settles them with MarkPaid.
type FakeGateway struct {
	server *httptest.Server

	mu       sync.Mutex
	payments map[string]*fakePayment
	refunds  map[string]int64
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{
		payments: make(map[string]*fakePayment),
		refunds:  make(map[string]int64),
	}

	engine := gin.New()
	engine.POST("/payments/prepare", g.prepare)
	engine.GET("/payments/:id", g.get)
	engine.POST("/payments/:id/cancel", g.cancel)
	g.server = httptest.NewServer(engine)
	return g
}

func (g *FakeGateway) URL() string { return g.server.URL }

func (g *FakeGateway) Close() { g.server.Close() }

func (g *FakeGateway) MarkPaid(externalID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.payments[externalID]; ok {
		now := time.Now().UTC()
		p.Status, p.PaidAt = "paid", &now
	}
}

// Refunded returns the total amount cancelled at the gateway for externalID.
func (g *FakeGateway) Refunded(externalID string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refunds[externalID]
}

func (g *FakeGateway) prepare(c *gin.Context) {
	var req struct {
		OrderRef string `json:"order_ref"`
		Amount   int64  `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id := "pay_" + uuid.NewString()
	g.mu.Lock()
	g.payments[id] = &fakePayment{ExternalPaymentID: id, Status: "pending", Amount: req.Amount, OrderRef: req.OrderRef}
	g.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"external_payment_id": id,
		"checkout_params":     gin.H{"url": g.server.URL + "/checkout/" + id},
	})
}

func (g *FakeGateway) get(c *gin.Context) {
	g.mu.Lock()
	p, ok := g.payments[c.Param("id")]
	var out fakePayment
	if ok {
		out = *p
	}
	g.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (g *FakeGateway) cancel(c *gin.Context) {
	var req struct {
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id := c.Param("id")
	g.mu.Lock()
	_, ok := g.payments[id]
	if ok {
		g.refunds[id] += req.Amount
	}
	g.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cancellation_id": "cncl_" + uuid.NewString(),
		"amount":          req.Amount,
		"reason":          req.Reason,
		"cancelled_at":    time.Now().UTC(),
	})
}
