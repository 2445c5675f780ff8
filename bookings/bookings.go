package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tourane/db"
	"tourane/guides"
	"tourane/models"
	"tourane/notify"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateRequest is the booking creation payload shared by the direct and
// payment-first paths.
type CreateRequest struct {
	GuideID    string `json:"guideId"`
	LocationID string `json:"locationId"`
	Date       string `json:"date"`
	TimeSlot   string `json:"timeSlot"`
	Guests     int    `json:"guests"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
}

// Build validates references and assembles a pending booking. It resolves
// the guide reference through the compatibility chain and computes the
// price from the location. The returned location and resolution feed the
// notification payload.
func Build(ctx context.Context, customerID string, req CreateRequest) (models.Booking, models.Location, guides.Resolution, int, error) {
	var zero models.Booking
	var loc models.Location
	var res guides.Resolution

	if req.GuideID == "" || req.LocationID == "" || req.Date == "" || req.TimeSlot == "" {
		return zero, loc, res, http.StatusBadRequest, errors.New("guideId, locationId, date and timeSlot are required")
	}

	date := utils.ParseDate(req.Date)
	if date == nil {
		return zero, loc, res, http.StatusBadRequest, errors.New("invalid date")
	}

	err := db.LocationsCollection.FindOne(ctx, bson.M{"locationid": req.LocationID}).Decode(&loc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, loc, res, http.StatusNotFound, errors.New("location not found")
		}
		return zero, loc, res, http.StatusInternalServerError, err
	}

	res, err = guides.ResolveRef(ctx, req.GuideID)
	if err != nil {
		if errors.Is(err, guides.ErrGuideNotFound) {
			return zero, loc, res, http.StatusNotFound, errors.New("guide not found")
		}
		return zero, loc, res, http.StatusInternalServerError, err
	}

	guests := req.Guests
	if guests < 1 {
		guests = 1
	}

	booking := models.Booking{
		BookingID:   utils.GenerateRandomDigitString(16),
		UserID:      customerID,
		GuideID:     res.ProfileID(),
		GuideUserID: res.AccountID(),
		LocationID:  loc.LocationID,
		Date:        date.UTC(),
		TimeSlot:    req.TimeSlot,
		Guests:      guests,
		Price:       ComputePrice(loc.Price, guests),
		Status:      models.BookingPending,
		Phone:       req.Phone,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	return booking, loc, res, http.StatusCreated, nil
}

func customerInfo(ctx context.Context, userID, fallbackPhone string) models.CustomerInfo {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return models.CustomerInfo{Name: "customer", Phone: fallbackPhone}
	}
	phone := user.Phone
	if phone == "" {
		phone = fallbackPhone
	}
	return models.CustomerInfo{Name: user.Name, Email: user.Email, Phone: phone}
}

// PublishCreated notifies the assigned guide about a new booking on their
// private topic. Failures never affect the booking.
func PublishCreated(b models.Booking, loc models.Location) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := models.NewBookingEvent{
		BookingID: b.BookingID,
		Customer:  customerInfo(ctx, b.UserID, b.Phone),
		Location:  models.LocationInfo{Name: loc.Name, Category: loc.Category},
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		Guests:    b.Guests,
		Total:     b.Price,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
	notify.Publish(ctx, notify.GuideTopic(b.GuideUserID), models.EventNewBooking, event)
}

// CreateBooking handles POST /api/bookings (direct path, no payment).
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, loc, res, code, err := Build(ctx, customerID, req)
	if err != nil {
		if code == http.StatusInternalServerError {
			log.Printf("createBooking: %v", err)
			utils.RespondWithError(w, code, "Internal server error")
			return
		}
		utils.RespondWithError(w, code, err.Error())
		return
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	go PublishCreated(booking, loc)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Booking created",
		"booking": enrich(ctx, booking),
		"guide":   res.Summary(),
	})
}

// enrichedBooking is the listing shape with resolved display fields.
type enrichedBooking struct {
	models.Booking
	Location *models.LocationSummary `json:"location"`
	Guide    models.GuideSummary     `json:"guide"`
	Total    float64                 `json:"total"`
}

// enrich attaches location and guide display data to a booking. Guide
// display falls back to a placeholder when resolution fails.
func enrich(ctx context.Context, b models.Booking) enrichedBooking {
	out := enrichedBooking{
		Booking: b,
		Guide:   models.GuideSummary{Name: "no guide assigned"},
		Total:   b.Price,
	}

	var loc models.Location
	if err := db.LocationsCollection.FindOne(ctx, bson.M{"locationid": b.LocationID}).Decode(&loc); err == nil {
		out.Location = &models.LocationSummary{
			LocationID: loc.LocationID,
			Name:       loc.Name,
			Category:   loc.Category,
			Price:      loc.Price,
			Images:     loc.Images,
		}
	}

	if b.GuideUserID != "" {
		if res, err := guides.ResolveRef(ctx, b.GuideUserID); err == nil {
			out.Guide = res.Summary()
		}
	}
	return out
}

// GetMyBookings lists the caller's bookings, newest first.
func GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.BookingsCollection.Find(ctx, bson.M{"userid": customerID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}

	out := make([]enrichedBooking, 0, len(list))
	for _, b := range list {
		out = append(out, enrich(ctx, b))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(out), "bookings": out})
}

// GetGuideBookings lists bookings for the authenticated guide. A guide
// without a profile has no bookings; that is an empty result, not an
// error. Only paid bookings qualify, plus records predating the
// paymentStatus field.
func GetGuideBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if utils.GetUserRoleFromRequest(r) != models.RoleGuide {
		utils.RespondWithError(w, http.StatusForbidden, "Guide access only")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := guides.ResolveByAccount(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if profile == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": 0, "bookings": []enrichedBooking{}})
		return
	}

	filter := bson.M{
		"$and": []bson.M{
			{"$or": []bson.M{
				{"guideid": profile.ProfileID},
				{"guideUserid": userID},
			}},
			guides.PaidOrLegacyFilter(),
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.BookingsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}

	out := make([]enrichedBooking, 0, len(list))
	for _, b := range list {
		e := enrich(ctx, b)
		// Legacy records predate the field; readers treat them as paid.
		if e.PaymentStatus == "" {
			e.PaymentStatus = models.PaymentPaid
		}
		out = append(out, e)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(out), "bookings": out})
}

// GetPendingBookings lists bookings awaiting approval. Admin only.
func GetPendingBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.BookingsCollection.Find(ctx, bson.M{"status": models.BookingPending}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}

	out := make([]enrichedBooking, 0, len(list))
	for _, b := range list {
		out = append(out, enrich(ctx, b))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(out), "bookings": out})
}

// GetBooking returns one booking to its customer, its guide or an admin.
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetUserRoleFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	isOwner := userID == b.UserID
	isGuide := b.GuideUserID != "" && userID == b.GuideUserID
	if !isOwner && !isGuide && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "booking": enrich(ctx, b)})
}

// UpdateStatus handles PUT /api/bookings/:id/status.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actorID := utils.GetUserIDFromRequest(r)
	actorRole := utils.GetUserRoleFromRequest(r)
	if actorID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if !ValidStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Invalid status; accepted: pending, confirmed, cancelled, completed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !ActorAllowed(actorID, actorRole, b, body.Status) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to change this booking")
		return
	}
	if !CanTransition(b.Status, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Transition not allowed")
		return
	}

	oldStatus := b.Status
	ApplyTransition(&b, body.Status, actorID, body.Reason, time.Now().UTC())

	set := bson.M{"status": b.Status}
	if b.ApprovedAt != nil {
		set["approvedBy"] = b.ApprovedBy
		set["approvedAt"] = b.ApprovedAt
	}
	if b.CancelledAt != nil {
		set["cancelledAt"] = b.CancelledAt
		set["cancelReason"] = b.CancelReason
	}

	if _, err := db.BookingsCollection.UpdateOne(ctx, bson.M{"bookingid": b.BookingID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	go publishStatusChanged(b, oldStatus)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Status updated to " + b.Status,
		"booking": enrich(ctx, b),
	})
}

func publishStatusChanged(b models.Booking, oldStatus string) {
	if b.GuideUserID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	locName := "unknown"
	var loc models.Location
	if err := db.LocationsCollection.FindOne(ctx, bson.M{"locationid": b.LocationID}).Decode(&loc); err == nil {
		locName = loc.Name
	}

	event := models.BookingStatusEvent{
		BookingID: b.BookingID,
		OldStatus: oldStatus,
		NewStatus: b.Status,
		Customer:  customerInfo(ctx, b.UserID, b.Phone),
		Location:  models.LocationInfo{Name: locName, Category: loc.Category},
	}
	notify.Publish(ctx, notify.GuideTopic(b.GuideUserID), models.EventBookingStatusChanged, event)
}
