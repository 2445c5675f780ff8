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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateLocation adds a bookable destination. Admin only (enforced at the
// route); the guide list starts empty and is mutated only through
// assignment and removal.
func CreateLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Price       float64  `json:"price"`
		Images      []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	now := time.Now().UTC()
	location := models.Location{
		LocationID:  utils.GetUUID(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Images:      input.Images,
		Guides:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if location.Images == nil {
		location.Images = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.LocationsCollection.InsertOne(ctx, location); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create location")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "location": location})
}

// GetLocations lists locations with their guide counts.
func GetLocations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	filter := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}

	cur, err := db.LocationsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list locations")
		return
	}
	defer cur.Close(ctx)

	var locations []models.Location
	if err := cur.All(ctx, &locations); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode locations")
		return
	}

	type entry struct {
		models.Location
		GuideCount int `json:"guideCount"`
	}
	out := make([]entry, 0, len(locations))
	for _, loc := range locations {
		out = append(out, entry{Location: loc, GuideCount: len(loc.Guides)})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(out), "locations": out})
}

// GetLocation returns one location.
func GetLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "location": location})
}

// UpdateLocation updates mutable fields. The guide list is deliberately
// untouched here; only assignment/removal mutate it.
func UpdateLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Category    *string   `json:"category"`
		Price       *float64  `json:"price"`
		Images      *[]string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Images != nil {
		set["images"] = *input.Images
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.LocationsCollection.FindOneAndUpdate(ctx,
		bson.M{"locationid": ps.ByName("id")},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var location models.Location
	if err := res.Decode(&location); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Location not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "location": location})
}

// DeleteLocation removes a location.
func DeleteLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.LocationsCollection.DeleteOne(ctx, bson.M{"locationid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete location")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Location not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
