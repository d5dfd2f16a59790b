package controllers

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

func paymentClient() (payment.Client, error) {
	cfg, err := mpconfig.New(os.Getenv("MP_ACCESS_TOKEN"))
	if err != nil {
		return nil, fmt.Errorf("failed to configure payment client: %v", err)
	}
	return payment.NewClient(cfg), nil
}

// InitiatePixPayment creates the PIX charge for a payment_pending order and
// returns the scannable QR code and the copy-paste string. Calling it again
// for the same order returns the charge already created.
func InitiatePixPayment(c *gin.Context) {
	utils.LogInfo("InitiatePixPayment called")

	number := c.Param("number")
	var order models.Order
	if err := config.DB.Where("number = ?", number).First(&order).Error; err != nil {
		utils.LogError("Order not found: %s", number)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusPaymentPending {
		utils.LogError("Payment initiation refused for order %s in status %s", order.Number, order.Status)
		utils.BadRequest(c, "This order is not awaiting payment", nil)
		return
	}

	// Re-initiation returns the existing charge instead of creating a new one
	if order.ProviderPaymentID != 0 {
		utils.LogInfo("Returning existing PIX charge for order %s", order.Number)
		utils.Success(c, "PIX payment already created", pixResponse(&order))
		return
	}

	client, err := paymentClient()
	if err != nil {
		utils.LogError("%v", err)
		utils.InternalServerError(c, "Payment provider is unavailable, please try again", nil)
		return
	}

	request := payment.Request{
		TransactionAmount: order.Total,
		Description:       fmt.Sprintf("Marmitex order %s", order.Number),
		PaymentMethodID:   "pix",
		ExternalReference: order.Number,
		Payer: &payment.PayerRequest{
			Email: order.CustomerEmail,
		},
	}

	resource, err := client.Create(c.Request.Context(), request)
	if err != nil {
		utils.LogError("Failed to create PIX payment for order %s: %v", order.Number, err)
		utils.InternalServerError(c, "Failed to create the PIX payment, please try again", gin.H{"retry": true})
		return
	}
	utils.LogInfo("Created PIX payment %d for order %s", resource.ID, order.Number)

	updates := map[string]interface{}{
		"provider_payment_id": int64(resource.ID),
	}
	if resource.PointOfInteraction.TransactionData.QRCodeBase64 != "" {
		updates["pix_qr_code"] = resource.PointOfInteraction.TransactionData.QRCodeBase64
	}
	if resource.PointOfInteraction.TransactionData.QRCode != "" {
		updates["pix_copy_paste"] = resource.PointOfInteraction.TransactionData.QRCode
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.LogError("Failed to save payment details for order %s: %v", order.Number, err)
		utils.InternalServerError(c, "Failed to save payment details", nil)
		return
	}

	order.ProviderPaymentID = int64(resource.ID)
	order.PixQRCode = resource.PointOfInteraction.TransactionData.QRCodeBase64
	order.PixCopyPaste = resource.PointOfInteraction.TransactionData.QRCode

	utils.Success(c, "PIX payment created. Scan the code or copy the string to pay.", pixResponse(&order))
}

func pixResponse(order *models.Order) gin.H {
	return gin.H{
		"order_id":            order.Number,
		"amount":              fmt.Sprintf("%.2f", order.Total),
		"provider_payment_id": order.ProviderPaymentID,
		"qr_code_base64":      order.PixQRCode,
		"qr_code_copy_paste":  order.PixCopyPaste,
	}
}

// GetPaymentStatus lets the storefront poll whether the webhook has
// confirmed the order yet.
func GetPaymentStatus(c *gin.Context) {
	utils.LogInfo("GetPaymentStatus called")

	number := c.Param("number")
	var order models.Order
	if err := config.DB.Where("number = ?", number).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Payment status retrieved", gin.H{
		"order_id":       order.Number,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	})
}
