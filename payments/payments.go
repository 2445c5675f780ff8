package payments

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tourane/bookings"
	"tourane/db"
	"tourane/models"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createRequest struct {
	bookings.CreateRequest
	Method string  `json:"method"`
	Total  float64 `json:"total"`
}

// CreatePayment handles POST /api/payment: the payment-first path that
// records a paid booking and its payment in one call. The two inserts
// are sequential; a payment insert failure leaves the booking in place
// and is reported to the caller.
func CreatePayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Method == "" || req.Total <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "method and total are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, loc, res, code, err := bookings.Build(ctx, customerID, req.CreateRequest)
	if err != nil {
		if code == http.StatusInternalServerError {
			log.Printf("createPayment: %v", err)
			utils.RespondWithError(w, code, "Internal server error")
			return
		}
		utils.RespondWithError(w, code, err.Error())
		return
	}
	// Payments are always made against a published guide profile, not a
	// bare account.
	if res.Profile == nil {
		utils.RespondWithError(w, http.StatusNotFound, "guide not found")
		return
	}

	booking.PaymentStatus = models.PaymentPaid
	booking.PaymentMethod = req.Method

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	payment := models.Payment{
		PaymentID: utils.GenerateRandomDigitString(16),
		UserID:    customerID,
		BookingID: booking.BookingID,
		Method:    req.Method,
		Amount:    req.Total,
		Status:    models.PaymentPaid,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.PaymentsCollection.InsertOne(ctx, payment); err != nil {
		log.Printf("createPayment: booking %s persisted but payment insert failed: %v", booking.BookingID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	go bookings.PublishCreated(booking, loc)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Payment recorded",
		"booking": booking,
		"payment": payment,
		"guide":   res.Summary(),
	})
}

// GetMyPayments lists the caller's payments, newest first.
func GetMyPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.PaymentsCollection.Find(ctx, bson.M{"userid": customerID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	defer cur.Close(ctx)

	var list []models.Payment
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode payments")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(list), "payments": list})
}
