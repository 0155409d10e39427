package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"tmms/database"
	"tmms/middleware"
	"tmms/models"
	"tmms/payments"
)

type PaymentController struct {
	gateway *payments.Gateway
}

func NewPaymentController(gateway *payments.Gateway) *PaymentController {
	return &PaymentController{gateway: gateway}
}

// CreateOrder registers a gateway transaction for an amount. When the
// receipt names one of the caller's store orders, the gateway order id is
// stamped onto it so verification and webhooks can find it later.
func (p *PaymentController) CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input struct {
		Amount   float64 `json:"amount" binding:"required,gt=0"`
		Currency string  `json:"currency"`
		Receipt  string  `json:"receipt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount is required"})
		return
	}

	gwOrder, err := p.gateway.CreateOrder(input.Amount, input.Currency, input.Receipt)
	if err != nil {
		log.Error().Err(err).Msg("gateway order creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create payment order",
		})
		return
	}

	if input.Receipt != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := database.OrderCollection.UpdateOne(ctx,
			bson.M{"orderId": input.Receipt, "userId": user.ID},
			bson.M{"$set": bson.M{"razorpayOrderId": gwOrder.ID, "updatedAt": time.Now()}})
		if err != nil {
			log.Error().Err(err).Str("orderId", input.Receipt).Msg("failed to link gateway order")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   gwOrder,
		"key_id":  p.gateway.KeyID(),
	})
}

// Verify checks the gateway signature and, in the same request, marks the
// linked order paid and confirmed. Verify and the webhook write the same
// fields keyed by gateway order id, so whichever lands first wins and the
// other is a no-op.
func (p *PaymentController) Verify(c *gin.Context) {
	var input struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing payment verification parameters",
		})
		return
	}

	if err := p.gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid payment signature",
		})
		return
	}

	if err := p.markPaid(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature); err != nil {
		log.Error().Err(err).Str("gatewayOrderId", input.RazorpayOrderID).Msg("failed to record payment on order")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Payment verified successfully",
		"paymentId": input.RazorpayPaymentID,
		"orderId":   input.RazorpayOrderID,
	})
}

// GetPayment proxies a payment lookup to the gateway.
func (p *PaymentController) GetPayment(c *gin.Context) {
	payment, err := p.gateway.FetchPayment(c.Param("paymentId"))
	if err != nil {
		log.Error().Err(err).Str("paymentId", c.Param("paymentId")).Msg("payment fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch payment details",
		})
		return
	}

	amount, _ := payment["amount"].(float64)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": gin.H{
			"id":        payment["id"],
			"amount":    amount / 100,
			"currency":  payment["currency"],
			"status":    payment["status"],
			"method":    payment["method"],
			"email":     payment["email"],
			"contact":   payment["contact"],
			"createdAt": payment["created_at"],
		},
	})
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook handles gateway event callbacks. The signature covers the raw
// body, so the body is read before any JSON decoding; a configured secret
// fails closed on mismatch. Without a secret no event can be authenticated,
// so the endpoint acknowledges and drops the event instead of trusting it —
// an unsigned POST must never reach the order mutations below.
func (p *PaymentController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unreadable body"})
		return
	}

	if !p.gateway.WebhookConfigured() {
		log.Warn().Msg("webhook secret not configured, event dropped")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if err := p.gateway.VerifyWebhook(body, c.GetHeader("X-Razorpay-Signature")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid signature"})
		return
	}

	var event webhookPayload
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	entity := event.Payload.Payment.Entity
	switch event.Event {
	case "payment.captured":
		if err := p.markPaid(entity.OrderID, entity.ID, ""); err != nil {
			log.Error().Err(err).Str("gatewayOrderId", entity.OrderID).Msg("webhook capture update failed")
		}
	case "payment.failed":
		if err := p.markFailed(entity.OrderID, entity.ID); err != nil {
			log.Error().Err(err).Str("gatewayOrderId", entity.OrderID).Msg("webhook failure update failed")
		}
	default:
		log.Info().Str("event", event.Event).Msg("unhandled gateway event")
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// paidUpdate builds the aggregation-pipeline update for a captured payment:
// payment status, gateway ids and the pending → confirmed move land in one
// $set, with $cond leaving shipped/delivered orders untouched.
func paidUpdate(paymentID, signature string) bson.A {
	set := bson.M{
		"paymentStatus":     models.PaymentCompleted,
		"razorpayPaymentId": paymentID,
		"updatedAt":         time.Now(),
		"status": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$status", models.OrderPending}},
			models.OrderConfirmed,
			"$status",
		}},
	}
	if signature != "" {
		set["razorpaySignature"] = signature
	}
	return bson.A{bson.M{"$set": set}}
}

// markPaid is the single place a genuine payment mutates an order; the
// pipeline update keeps payment status and order status consistent even if
// the process dies mid-request.
func (p *PaymentController) markPaid(gatewayOrderID, paymentID, signature string) error {
	if gatewayOrderID == "" {
		return errors.New("empty gateway order id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"razorpayOrderId": gatewayOrderID}, paidUpdate(paymentID, signature))
	return err
}

func (p *PaymentController) markFailed(gatewayOrderID, paymentID string) error {
	if gatewayOrderID == "" {
		return errors.New("empty gateway order id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"razorpayOrderId": gatewayOrderID},
		bson.M{"$set": bson.M{
			"paymentStatus":     models.PaymentFailed,
			"razorpayPaymentId": paymentID,
			"updatedAt":         time.Now(),
		}})
	return err
}
