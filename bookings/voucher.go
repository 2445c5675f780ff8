package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tourane/db"
	"tourane/globals"
	"tourane/guides"
	"tourane/models"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// VoucherPayload returns the signed QR payload for a booking:
// bookingID|locationID|date|signature.
func VoucherPayload(bookingID, locationID string, date time.Time) string {
	data := fmt.Sprintf("%s|%s|%s", bookingID, locationID, date.Format("2006-01-02"))
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// PrintVoucher renders a PDF voucher for a booking, with a signed QR code
// the guide can scan on site. Customer or admin only.
func PrintVoucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
	if userID != b.UserID && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to print this voucher")
		return
	}

	locName := b.LocationID
	var loc models.Location
	if err := db.LocationsCollection.FindOne(ctx, bson.M{"locationid": b.LocationID}).Decode(&loc); err == nil {
		locName = loc.Name
	}

	guideName := "no guide assigned"
	if b.GuideUserID != "" {
		if res, err := guides.ResolveRef(ctx, b.GuideUserID); err == nil {
			guideName = res.Account.Name
		}
	}

	qrPNG, err := qrcode.Encode(VoucherPayload(b.BookingID, b.LocationID, b.Date), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tour Booking Voucher")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", b.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Location: %s", locName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Guide: %s", guideName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s  Slot: %s", b.Date.Format("2006-01-02"), b.TimeSlot))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Guests: %d  Total: %.2f", b.Guests, b.Price))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", b.Status))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+b.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
