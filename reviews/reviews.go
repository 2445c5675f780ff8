package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tourane/db"
	"tourane/models"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReview handles POST /api/reviews. The booking's visit date must
// have passed, and only its customer may review it.
func CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reviewerID := utils.GetUserIDFromRequest(r)
	if reviewerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		BookingID string `json:"bookingId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if body.BookingID == "" || body.Rating < 1 || body.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "bookingId and a rating between 1 and 5 are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": body.BookingID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if booking.UserID != reviewerID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the booking's customer can review it")
		return
	}
	if booking.Date.After(time.Now().UTC()) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot review a visit that has not happened yet")
		return
	}

	review := models.Review{
		ReviewID:   utils.GenerateRandomDigitString(16),
		BookingID:  booking.BookingID,
		ReviewerID: reviewerID,
		Rating:     body.Rating,
		Comment:    body.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	if booking.GuideUserID != "" {
		if err := RecomputeGuideRating(ctx, booking.GuideUserID); err != nil {
			log.Printf("createReview: rating recompute for guide %s: %v", booking.GuideUserID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "review": review})
}

// RecomputeGuideRating recalculates a guide's mean rating from every
// review attached to any of their bookings and persists it on both the
// profile and the account.
func RecomputeGuideRating(ctx context.Context, guideUserID string) error {
	cur, err := db.BookingsCollection.Find(ctx,
		bson.M{"guideUserid": guideUserID},
		options.Find().SetProjection(bson.M{"bookingid": 1}),
	)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var bookingIDs []string
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			return err
		}
		bookingIDs = append(bookingIDs, b.BookingID)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	var ratings []int
	if len(bookingIDs) > 0 {
		rcur, err := db.ReviewsCollection.Find(ctx, bson.M{"bookingid": bson.M{"$in": bookingIDs}})
		if err != nil {
			return err
		}
		defer rcur.Close(ctx)

		var list []models.Review
		if err := rcur.All(ctx, &list); err != nil {
			return err
		}
		for _, rv := range list {
			ratings = append(ratings, rv.Rating)
		}
	}

	rating := MeanRating(ratings)
	total := len(ratings)

	if _, err := db.GuideProfilesCollection.UpdateOne(ctx,
		bson.M{"userid": guideUserID},
		bson.M{"$set": bson.M{"rating": rating}},
	); err != nil {
		return err
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": guideUserID},
		bson.M{"$set": bson.M{"rating": rating, "totalReviews": total}},
	)
	return err
}

// GetReviewsByBooking lists a booking's reviews, newest first.
func GetReviewsByBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.ReviewsCollection.Find(ctx, bson.M{"bookingid": ps.ByName("id")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}
	defer cur.Close(ctx)

	var list []models.Review
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(list), "reviews": list})
}
