package admin

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

type statusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

type monthlyCount struct {
	Month string `json:"month" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// GetStats returns platform-wide counters and chart data for the admin
// dashboard.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	guidesTotal, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleGuide})
	guidesPending, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleGuide, "status": models.StatusPending})
	locations, _ := db.LocationsCollection.CountDocuments(ctx, bson.M{})

	byStatus, err := bookingsByStatus(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	byMonth, err := bookingsByMonth(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	revenue, err := totalRevenue(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"stats": utils.M{
			"users":            users,
			"guides":           guidesTotal,
			"pendingGuides":    guidesPending,
			"locations":        locations,
			"bookingsByStatus": byStatus,
			"bookingsByMonth":  byMonth,
			"totalRevenue":     revenue,
		},
	})
}

func bookingsByStatus(ctx context.Context) ([]statusCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"_id": 1}},
	}
	cur, err := db.BookingsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []statusCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// bookingsByMonth buckets bookings by creation month for the last year.
func bookingsByMonth(ctx context.Context) ([]monthlyCount, error) {
	since := time.Now().UTC().AddDate(-1, 0, 0)
	pipeline := []bson.M{
		{"$match": bson.M{"createdAt": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cur, err := db.BookingsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []monthlyCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func totalRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": models.PaymentPaid}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}
	cur, err := db.PaymentsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
