package admin

import (
	"context"
	"encoding/json"
	"errors"
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

const defaultRejectionReason = "requirements not met"

// GetPendingGuides lists guide accounts awaiting approval, oldest first.
func GetPendingGuides(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := db.UserCollection.Find(ctx, bson.M{"role": models.RoleGuide, "status": models.StatusPending}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list pending guides")
		return
	}
	defer cur.Close(ctx)

	var list []models.User
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode pending guides")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(list), "guides": list})
}

// ApproveGuide activates a pending guide account and marks its profile
// approved.
func ApproveGuide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID := utils.GetUserIDFromRequest(r)
	guideID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": guideID, "role": models.RoleGuide},
		bson.M{"$set": bson.M{
			"status":     models.StatusActive,
			"approvedBy": adminID,
			"approvedAt": now,
			"updatedAt":  now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to approve guide")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Guide not found")
		return
	}

	_, err = db.GuideProfilesCollection.UpdateOne(ctx,
		bson.M{"userid": guideID},
		bson.M{"$set": bson.M{"approved": true, "updatedAt": now}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Guide activated but profile update failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Guide approved"})
}

// RejectGuide declines a pending guide: the account is demoted to a
// regular user and the guide profile removed.
func RejectGuide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID := utils.GetUserIDFromRequest(r)
	guideID := ps.ByName("id")

	var body struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a missing reason gets a default.
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Reason == "" {
		body.Reason = defaultRejectionReason
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": guideID, "role": models.RoleGuide},
		bson.M{"$set": bson.M{
			"status":          models.StatusRejected,
			"role":            models.RoleUser,
			"rejectedBy":      adminID,
			"rejectedAt":      now,
			"rejectionReason": body.Reason,
			"updatedAt":       now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reject guide")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Guide not found")
		return
	}

	if _, err := db.GuideProfilesCollection.DeleteOne(ctx, bson.M{"userid": guideID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Guide rejected but profile cleanup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Guide rejected"})
}

// GetUser returns one account by id. Admin only.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("id")}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user})
}

// SuspendUser flips an account to suspended so it can no longer log in.
func SuspendUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": models.StatusSuspended, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to suspend user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "User suspended"})
}
