package handlers

import (
	"helpdesk-app/internal/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public API onto the router. Self-or-secretary
// routes pass the authenticated gate here; the owner comparison happens in
// the services once the record is loaded.
func RegisterRoutes(
	router *gin.Engine,
	auth *AuthHandler,
	users *UserHandler,
	tickets *TicketHandler,
	appointments *AppointmentHandler,
	resources *ResourceHandler,
) {
	authed := utils.Require(utils.Authenticated)
	secretary := utils.Require(utils.SecretaryOnly)

	router.POST("/create_user", auth.CreateUser)
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout)
	router.GET("/check_auth", auth.CheckAuth)

	router.GET("/get_user", authed, users.GetUser)
	router.GET("/get_all_users", secretary, users.GetAllUsers)
	router.PUT("/update_user", authed, users.UpdateUser)
	router.DELETE("/delete_user", secretary, users.DeleteUser)

	router.POST("/create_ticket", authed, tickets.CreateTicket)
	router.GET("/get_ticket", authed, tickets.GetTicket)
	router.GET("/get_all_tickets", secretary, tickets.GetAllTickets)
	router.GET("/get_user_tickets", authed, tickets.GetUserTickets)
	router.PUT("/update_ticket", secretary, tickets.UpdateTicket)
	router.DELETE("/delete_ticket", authed, tickets.DeleteTicket)

	router.POST("/create_appointment", authed, appointments.CreateAppointment)
	router.GET("/get_appointment", authed, appointments.GetAppointment)
	router.GET("/get_all_appointments", secretary, appointments.GetAllAppointments)
	router.GET("/get_user_appointments", authed, appointments.GetUserAppointments)
	router.GET("/check_time_slot_availability", authed, appointments.CheckTimeSlotAvailability)
	router.PUT("/update_appointment", secretary, appointments.UpdateAppointment)
	router.DELETE("/delete_appointment", authed, appointments.DeleteAppointment)

	router.POST("/create_resource", secretary, resources.CreateResource)
	router.GET("/get_resource", resources.GetResource)
	router.GET("/get_all_resources", resources.GetAllResources)
	router.PUT("/update_resource", secretary, resources.UpdateResource)
	router.DELETE("/delete_resource", secretary, resources.DeleteResource)
}
