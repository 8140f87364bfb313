package models

type SubscriptionPlanID uint64

// ServiceCategory is a bookable kind of home service.
type ServiceCategory struct {
	ID          ServiceCategoryID `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

// SubscriptionPlan is a recurring plan offered to customers.
type SubscriptionPlan struct {
	ID    SubscriptionPlanID `json:"id"`
	Name  string             `json:"name"`
	Price uint64             `json:"price"`
}
