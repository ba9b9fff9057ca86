package domain

// User Roles
const (
	RoleCraftsman = "craftsman"
	RoleBuilder   = "builder"
	RoleAdmin     = "admin"
)

// Order Statuses
const (
	OrderStatusPending      = "pending"
	OrderStatusConfirmed    = "confirmed"
	OrderStatusInProduction = "in_production"
	OrderStatusShipped      = "shipped"
	OrderStatusDelivered    = "delivered"
	OrderStatusCancelled    = "cancelled"
)

// Sample Request Statuses
const (
	SampleStatusRequested = "requested"
	SampleStatusApproved  = "approved"
	SampleStatusDeclined  = "declined"
	SampleStatusShipped   = "shipped"
)

// List Exports for API
var OnboardingRoles = []string{
	RoleCraftsman,
	RoleBuilder,
}

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var SampleStatuses = []string{
	SampleStatusRequested,
	SampleStatusApproved,
	SampleStatusDeclined,
	SampleStatusShipped,
}
