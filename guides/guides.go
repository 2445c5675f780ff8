package guides

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tourane/db"
	"tourane/models"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// guideView merges an account with its profile for listing responses.
// Accounts without a profile fall back to account-derived defaults.
type guideView struct {
	UserID         string   `json:"userid"`
	ProfileID      string   `json:"profileid,omitempty"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	PricePerDay    float64  `json:"pricePerDay,omitempty"`
	Rating         float64  `json:"rating"`
	Approved       bool     `json:"approved"`
}

func viewFor(ctx context.Context, account models.User) guideView {
	v := guideView{
		UserID:    account.UserID,
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		Languages: account.Languages,
		Bio:       account.Bio,
		Rating:    account.Rating,
		Approved:  account.Status == models.StatusActive,
	}
	profile, err := ResolveByAccount(ctx, account.UserID)
	if err != nil || profile == nil {
		return v
	}
	v.ProfileID = profile.ProfileID
	v.Certifications = profile.Certifications
	v.PricePerDay = profile.PricePerDay
	v.Approved = profile.Approved
	if profile.Rating > 0 {
		v.Rating = profile.Rating
	}
	if len(profile.Languages) > 0 {
		v.Languages = profile.Languages
	}
	if profile.Bio != "" {
		v.Bio = profile.Bio
	}
	return v
}

// GetGuides lists active guide accounts.
func GetGuides(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.UserCollection.Find(ctx, bson.M{
		"role":   models.RoleGuide,
		"status": models.StatusActive,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list guides")
		return
	}
	defer cur.Close(ctx)

	var accounts []models.User
	if err := cur.All(ctx, &accounts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode guides")
		return
	}

	views := make([]guideView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, viewFor(ctx, a))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(views), "guides": views})
}

// GetGuidesByLocation lists the guides assigned to a location.
func GetGuidesByLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var location models.Location
	err := db.LocationsCollection.FindOne(ctx, bson.M{"locationid": ps.ByName("id")}).Decode(&location)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Location not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]guideView, 0, len(location.Guides))
	for _, uid := range location.Guides {
		var account models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": uid}).Decode(&account); err != nil {
			continue
		}
		views = append(views, viewFor(ctx, account))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(views), "guides": views})
}

// GetGuide returns one guide, resolved by profile id or account id.
func GetGuide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := ResolveRef(ctx, ps.ByName("id"))
	if err != nil {
		if errors.Is(err, ErrGuideNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Guide not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "guide": viewFor(ctx, *res.Account)})
}
