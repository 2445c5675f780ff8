package locations

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
)

// MergeGuideIDs appends candidates to existing, preserving order and
// skipping ids already present. Returns the merged list and how many
// candidates were newly added.
func MergeGuideIDs(existing, candidates []string) ([]string, int) {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(candidates))
	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}

	added := 0
	for _, id := range candidates {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, id)
		added++
	}
	return merged, added
}

// RemoveGuideID returns existing without id and whether it was present.
func RemoveGuideID(existing []string, id string) ([]string, bool) {
	out := make([]string, 0, len(existing))
	removed := false
	for _, g := range existing {
		if g == id {
			removed = true
			continue
		}
		out = append(out, g)
	}
	return out, removed
}

// AssignGuides appends guide accounts to a location's guide list. Strictly
// additive: existing ids are preserved, duplicates skipped, and every
// candidate must reference an existing guide account.
func AssignGuides(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Guides []string `json:"guides"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Guides == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "guides must be an array of account ids")
		return
	}

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

	// Validate every candidate before touching the list.
	for _, uid := range body.Guides {
		count, err := db.UserCollection.CountDocuments(ctx, bson.M{"userid": uid, "role": models.RoleGuide})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if count == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown guide account: "+uid)
			return
		}
	}

	merged, added := MergeGuideIDs(location.Guides, body.Guides)

	_, err = db.LocationsCollection.UpdateOne(ctx,
		bson.M{"locationid": location.LocationID},
		bson.M{"$set": bson.M{"guides": merged, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to assign guides")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"added":   added,
		"total":   len(merged),
		"guides":  merged,
	})
}

// RemoveGuide detaches one guide account from a location.
func RemoveGuide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	guideID := ps.ByName("guideId")

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

	remaining, removed := RemoveGuideID(location.Guides, guideID)
	if !removed {
		utils.RespondWithError(w, http.StatusNotFound, "Guide not assigned to this location")
		return
	}

	_, err = db.LocationsCollection.UpdateOne(ctx,
		bson.M{"locationid": location.LocationID},
		bson.M{"$set": bson.M{"guides": remaining, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove guide")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"total":   len(remaining),
		"guides":  remaining,
	})
}
