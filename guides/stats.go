package guides

import (
	"context"
	"net/http"
	"time"

	"tourane/db"
	"tourane/models"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type bookingStats struct {
	Total     int64   `json:"total"`
	Pending   int64   `json:"pending"`
	Confirmed int64   `json:"confirmed"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	Earnings  float64 `json:"earnings"`
	Guests    int64   `json:"guests"`
}

// GetMyStats summarizes the authenticated guide's bookings: counts per
// status plus earnings and guests over completed visits. Paid-or-legacy
// bookings only, like the booking listing.
func GetMyStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if utils.GetUserRoleFromRequest(r) != models.RoleGuide {
		utils.RespondWithError(w, http.StatusForbidden, "Guide access only")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := ResolveByAccount(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	refs := []bson.M{{"guideUserid": userID}}
	if profile != nil {
		refs = append(refs, bson.M{"guideid": profile.ProfileID})
	}
	match := bson.M{"$and": []bson.M{{"$or": refs}, PaidOrLegacyFilter()}}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$price"},
			"heads": bson.M{"$sum": "$guests"},
		}},
	}
	cur, err := db.BookingsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string  `bson:"_id"`
		Count  int64   `bson:"count"`
		Total  float64 `bson:"total"`
		Heads  int64   `bson:"heads"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode statistics")
		return
	}

	var stats bookingStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.BookingPending:
			stats.Pending = row.Count
		case models.BookingConfirmed:
			stats.Confirmed = row.Count
		case models.BookingCompleted:
			stats.Completed = row.Count
			stats.Earnings = row.Total
			stats.Guests = row.Heads
		case models.BookingCancelled:
			stats.Cancelled = row.Count
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "stats": stats})
}
