package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"chiroportaal/internal/identity"
	"chiroportaal/internal/metrics"
	addresssvc "chiroportaal/internal/service/address"
	agreementsvc "chiroportaal/internal/service/agreement"
	contactsvc "chiroportaal/internal/service/contact"
	eventsvc "chiroportaal/internal/service/event"
	groupsvc "chiroportaal/internal/service/group"
	membersvc "chiroportaal/internal/service/member"
	membershipsvc "chiroportaal/internal/service/membership"
	parentsvc "chiroportaal/internal/service/parent"
	sponsorsvc "chiroportaal/internal/service/sponsor"
	workyearsvc "chiroportaal/internal/service/workyear"
)

// Deps carries the wired services into the router.
type Deps struct {
	Addresses   *addresssvc.Service
	Groups      *groupsvc.Service
	WorkYears   *workyearsvc.Service
	Members     *membersvc.Service
	Parents     *parentsvc.Service
	Sponsors    *sponsorsvc.Service
	Memberships *membershipsvc.Service
	Agreements  *agreementsvc.Service
	Events      *eventsvc.Service
	Contact     *contactsvc.Service
	Identity    *identity.Service
	Metrics     *metrics.Metrics
}

// buildRouter wires routes for the API. The public group serves the website,
// the staff group is for leiding, user administration is admin only.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.Default())
	if deps.Metrics != nil {
		router.Use(observeRequests(deps.Metrics))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps, logger: logger}

	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", h.login)
		public.POST("/contact", h.sendContactMessage)
		public.GET("/sponsors", h.listActiveSponsors)
		public.GET("/events/upcoming", h.listUpcomingEvents)
		public.GET("/groups/eligible", h.listEligibleGroups)
	}

	staff := router.Group("/api/v1", requireAuth(deps.Identity), requireRole(identity.RoleLeiding))
	{
		staff.GET("/addresses", h.listAddresses)
		staff.POST("/addresses", h.createAddress)
		staff.GET("/addresses/:id", h.getAddress)
		staff.PATCH("/addresses/:id", h.updateAddress)
		staff.DELETE("/addresses/:id", h.deleteAddress)

		staff.GET("/groups", h.listGroups)
		staff.POST("/groups", h.createGroup)
		staff.GET("/groups/:id", h.getGroup)
		staff.PATCH("/groups/:id", h.updateGroup)
		staff.DELETE("/groups/:id", h.deleteGroup)

		staff.GET("/work-years", h.listWorkYears)
		staff.POST("/work-years", h.createWorkYear)
		staff.GET("/work-years/current", h.getCurrentWorkYear)
		staff.GET("/work-years/:id", h.getWorkYear)
		staff.PATCH("/work-years/:id", h.updateWorkYear)
		staff.DELETE("/work-years/:id", h.deleteWorkYear)
		staff.GET("/work-years/:id/memberships", h.listMembershipsByWorkYear)
		staff.GET("/work-years/:id/agreements", h.listAgreementsByWorkYear)

		staff.GET("/members", h.listMembers)
		staff.POST("/members", h.createMember)
		staff.GET("/members/:id", h.getMember)
		staff.PATCH("/members/:id", h.updateMember)
		staff.DELETE("/members/:id", h.deleteMember)
		staff.GET("/members/:id/parents", h.listMemberParents)
		staff.PUT("/members/:id/parents/:parentId", h.linkParent)
		staff.DELETE("/members/:id/parents/:parentId", h.unlinkParent)
		staff.GET("/members/:id/memberships", h.listMembershipsByMember)

		staff.GET("/parents", h.listParents)
		staff.POST("/parents", h.createParent)
		staff.GET("/parents/:id", h.getParent)
		staff.PATCH("/parents/:id", h.updateParent)
		staff.DELETE("/parents/:id", h.deleteParent)

		staff.GET("/sponsors/all", h.listSponsors)
		staff.POST("/sponsors", h.createSponsor)
		staff.GET("/sponsors/:id", h.getSponsor)
		staff.PATCH("/sponsors/:id", h.updateSponsor)
		staff.DELETE("/sponsors/:id", h.deleteSponsor)
		staff.GET("/sponsors/:id/agreements", h.listAgreementsBySponsor)

		staff.POST("/memberships", h.enrollMembership)
		staff.GET("/memberships/:memberId/:workYearId", h.getMembership)
		staff.PATCH("/memberships/:memberId/:workYearId", h.moveMembershipGroup)
		staff.POST("/memberships/:memberId/:workYearId/pay", h.payMembership)
		staff.DELETE("/memberships/:memberId/:workYearId", h.deleteMembership)

		staff.POST("/agreements", h.createAgreement)
		staff.GET("/agreements/:sponsorId/:workYearId", h.getAgreement)
		staff.PATCH("/agreements/:sponsorId/:workYearId", h.updateAgreement)
		staff.POST("/agreements/:sponsorId/:workYearId/pay", h.payAgreement)
		staff.DELETE("/agreements/:sponsorId/:workYearId", h.deleteAgreement)

		staff.GET("/events", h.listEvents)
		staff.POST("/events", h.createEvent)
		staff.GET("/events/:id", h.getEvent)
		staff.PATCH("/events/:id", h.updateEvent)
		staff.DELETE("/events/:id", h.deleteEvent)
		staff.GET("/events/:id/registrations", h.listEventRegistrations)
		staff.POST("/events/:id/registrations", h.registerForEvent)
		staff.POST("/events/:id/registrations/:memberId/pay", h.payEventRegistration)
		staff.DELETE("/events/:id/registrations/:memberId", h.unregisterFromEvent)
	}

	admin := router.Group("/api/v1/admin", requireAuth(deps.Identity), requireRole(identity.RoleAdmin))
	{
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.GET("/users/:id", h.getUser)
		admin.PATCH("/users/:id", h.updateUser)
		admin.DELETE("/users/:id", h.deleteUser)
	}

	return router
}
