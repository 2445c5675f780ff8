package routes

import (
	"tourane/admin"
	"tourane/auth"
	"tourane/bookings"
	"tourane/chat"
	"tourane/guides"
	"tourane/locations"
	"tourane/middleware"
	"tourane/payments"
	"tourane/ratelim"
	"tourane/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddGuideRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/guides", rl.Limit(guides.GetGuides))
	router.GET("/api/guides/:id", rl.Limit(guides.GetGuide))
	router.GET("/api/locations/:id/guides", rl.Limit(guides.GetGuidesByLocation))
}

func AddLocationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/locations", rl.Limit(locations.GetLocations))
	router.GET("/api/locations/:id", rl.Limit(locations.GetLocation))
	router.POST("/api/locations", middleware.Authenticate(middleware.RequireRole("admin", locations.CreateLocation)))
	router.PUT("/api/locations/:id", middleware.Authenticate(middleware.RequireRole("admin", locations.UpdateLocation)))
	router.DELETE("/api/locations/:id", middleware.Authenticate(middleware.RequireRole("admin", locations.DeleteLocation)))
	router.POST("/api/locations/:id/guides", middleware.Authenticate(middleware.RequireRole("admin", locations.AssignGuides)))
	router.DELETE("/api/locations/:id/guides/:guideId", middleware.Authenticate(middleware.RequireRole("admin", locations.RemoveGuide)))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(middleware.Authenticate(bookings.CreateBooking)))
	router.GET("/api/user/bookings", middleware.Authenticate(bookings.GetMyBookings))
	router.GET("/api/guide/bookings", middleware.Authenticate(bookings.GetGuideBookings))
	router.GET("/api/guide/stats", middleware.Authenticate(guides.GetMyStats))
	router.GET("/api/bookings/:id", middleware.Authenticate(bookings.GetBooking))
	router.PUT("/api/bookings/:id/status", middleware.Authenticate(bookings.UpdateStatus))
	router.GET("/api/bookings/:id/voucher", middleware.Authenticate(bookings.PrintVoucher))
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/payment", rl.Limit(middleware.Authenticate(payments.CreatePayment)))
	router.GET("/api/payment/my", middleware.Authenticate(payments.GetMyPayments))
}

func AddReviewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reviews", rl.Limit(middleware.Authenticate(reviews.CreateReview)))
	router.GET("/api/reviews/booking/:id", reviews.GetReviewsByBooking)
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/bookings/pending", middleware.Authenticate(middleware.RequireRole("admin", bookings.GetPendingBookings)))
	router.GET("/api/admin/guides/pending", middleware.Authenticate(middleware.RequireRole("admin", admin.GetPendingGuides)))
	router.PUT("/api/admin/guides/:id/approve", middleware.Authenticate(middleware.RequireRole("admin", admin.ApproveGuide)))
	router.PUT("/api/admin/guides/:id/reject", middleware.Authenticate(middleware.RequireRole("admin", admin.RejectGuide)))
	router.GET("/api/admin/users/:id", middleware.Authenticate(middleware.RequireRole("admin", admin.GetUser)))
	router.PUT("/api/admin/users/:id/suspend", middleware.Authenticate(middleware.RequireRole("admin", admin.SuspendUser)))
	router.GET("/api/admin/stats", middleware.Authenticate(middleware.RequireRole("admin", admin.GetStats)))
}

// AddChatRoutes wires the REST chat endpoints and both websocket
// endpoints; sockets carry their own token auth for browser clients.
func AddChatRoutes(router *httprouter.Router, hub *chat.Hub) {
	router.GET("/ws/chat/:room", chat.RoomSocket(hub))
	router.GET("/ws/notifications", chat.NotifySocket(hub))
	router.GET("/api/chats", middleware.Authenticate(chat.GetRooms))
	router.GET("/api/chat/:room/messages", middleware.Authenticate(chat.GetHistory))
	router.POST("/api/chat/:room/messages", middleware.Authenticate(chat.SendMessage(hub)))
}
